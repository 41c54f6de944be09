package app

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/exception"
	"github.com/xy-planning-network/rest/http/middleware"
	"github.com/xy-planning-network/rest/logger"
	"github.com/xy-planning-network/rest/view"
)

// An AppOption configures an *App under construction.
// AppOptions are applied before any default component is constructed,
// so components set by them are used in place of the defaults.
type AppOption func(a *App) error

// WithContext sets the context.Context the web server runs under.
func WithContext(ctx context.Context) AppOption {
	return func(a *App) error {
		if ctx == nil {
			return fmt.Errorf("%w: nil context", rest.ErrMissingData)
		}

		a.ctx = ctx
		return nil
	}
}

// WithEncoder adds, or replaces, the view.Encoder for the named format.
func WithEncoder(format string, enc view.Encoder) AppOption {
	return func(a *App) error {
		if enc == nil {
			return fmt.Errorf("%w: nil encoder for %q", rest.ErrMissingData, format)
		}

		a.encoders = append(a.encoders, view.WithEncoder(format, enc))
		return nil
	}
}

// WithLogger sets the logger.Logger every component logs with.
func WithLogger(l logger.Logger) AppOption {
	return func(a *App) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger", rest.ErrMissingData)
		}

		a.l = l
		return nil
	}
}

// WithMiddlewares appends middlewares applied to every request after the default ones.
func WithMiddlewares(mws ...middleware.Adapter) AppOption {
	return func(a *App) error {
		a.mws = append(a.mws, mws...)
		return nil
	}
}

// WithServer sets the *http.Server the App runs.
// Its Handler is replaced by the App's router.
func WithServer(srv *http.Server) AppOption {
	return func(a *App) error {
		if srv == nil {
			return fmt.Errorf("%w: nil server", rest.ErrMissingData)
		}

		a.srv = srv
		return nil
	}
}

// WithTemplates sets the fs.FS exception templates are looked up in
// before the templates shipped with rest.
func WithTemplates(files fs.FS) AppOption {
	return func(a *App) error {
		a.tmpls = files
		return nil
	}
}

// WithWrapperHandler sets how exceptions are shaped before being serialized.
func WithWrapperHandler(wh exception.WrapperHandler) AppOption {
	return func(a *App) error {
		if wh == nil {
			return fmt.Errorf("%w: nil wrapper handler", rest.ErrMissingData)
		}

		a.wrapper = wh
		return nil
	}
}
