package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/exception"
	"github.com/xy-planning-network/rest/http/template"
	"github.com/xy-planning-network/rest/logger"
	"github.com/xy-planning-network/rest/negotiation"
	"github.com/xy-planning-network/rest/version"
	"github.com/xy-planning-network/rest/view"
)

// DefaultFormat is the format errors are reported in when the request settles on none.
const DefaultFormat = "html"

const (
	notAcceptablePrefix = "No matching accepted Response format could be determined, while handling: "
	renderFailurePrefix = "An Exception was thrown while handling: "
)

// An ExceptionController writes responses describing errors.
//
// Most oftentimes, a single ExceptionController suffices for an application.
// Once constructed, an ExceptionController is safe for concurrent use.
type ExceptionController struct {
	codes         *exception.ValueMap[int]
	messages      *exception.ValueMap[bool]
	debug         bool
	defaultFormat string
	engine        template.Engine
	logger        logger.Logger
	negotiator    *negotiation.Negotiator
	pattern       *template.PathPattern
	views         view.Handler
	wrapper       exception.WrapperHandler
}

// NewExceptionController constructs an *ExceptionController using the ControllerOptFns passed in.
//
// By default, no class is mapped to a status code or marked as showing its message,
// formats are negotiated against negotiation.DefaultRegistry falling back to DefaultFormat,
// templates are those shipped with package template,
// views are rendered by a *view.ViewHandler and wrapped by exception.DefaultWrapperHandler.
func NewExceptionController(opts ...ControllerOptFn) *ExceptionController {
	h := exception.DefaultHierarchy()
	pattern, _ := template.NewPathPattern(template.DefaultPathPattern)
	n, _ := negotiation.NewNegotiator(negotiation.DefaultRegistry(), negotiation.Rule{Stop: true})

	c := &ExceptionController{
		codes:         exception.NewValueMap[int](h),
		messages:      exception.NewValueMap[bool](h),
		defaultFormat: DefaultFormat,
		logger:        logger.New(),
		negotiator:    n,
		pattern:       pattern,
		wrapper:       exception.DefaultWrapperHandler{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.engine == nil {
		c.engine = template.NewParser()
	}

	if c.views == nil {
		c.views = view.NewHandler(
			view.WithEngine(c.engine),
			view.WithLogger(c.logger),
			view.WithRegistry(c.negotiator.Registry()),
		)
	}

	return c
}

// Show writes the response reporting err.
//
// When no format can be negotiated and the default format is disabled, the response is a plain text 406.
// When rendering fails, or panics, the response is a plain text 500.
// In every case, the headers err declares are set.
//
// Show never panics.
func (c *ExceptionController) Show(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		err = exception.New(exception.RootClass, "")
	}

	msg := "error"
	var headers http.Header
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error("recovered while handling exception", &logger.LogContext{
				Request: r,
				Error:   fmt.Errorf("%w: %v", ErrRenderPanic, p),
			})
			c.plain(w, http.StatusInternalServerError, headers, renderFailurePrefix+msg)
		}
	}()

	msg = c.Message(err)
	headers = exception.HeadersOf(err)
	content := c.drain(r)

	format, ok := c.Format(r)
	if !ok {
		c.logger.Info("no acceptable format for exception", &logger.LogContext{Request: r, Error: err})
		c.plain(w, http.StatusNotAcceptable, headers, notAcceptablePrefix+msg)
		return
	}

	code := c.StatusCode(err)
	params := c.parameters(err, code, msg, format, content)
	c.report(r, err, code, format)

	resp, rerr := c.render(r, params, code, headers, format)
	if rerr != nil {
		c.logger.Error("could not render exception", &logger.LogContext{
			Request: r,
			Error:   rerr,
			Format:  format.Name,
			Data:    map[string]any{"exception": err.Error()},
		})
		c.plain(w, http.StatusInternalServerError, headers, renderFailurePrefix+msg)
		return
	}

	if werr := resp.Write(w); werr != nil {
		c.logger.Error("could not write exception response", &logger.LogContext{Request: r, Error: werr, Format: format.Name})
	}
}

// Format negotiates the format for reporting an error about r.
//
// When negotiation stops, the format r already declares in its _format attribute is used,
// else the default format.
// The format chosen is recorded in the attributes of r.
func (c *ExceptionController) Format(r *http.Request) (negotiation.Format, bool) {
	attrs := rest.AttributesFromContext(r.Context())

	res, err := c.negotiator.Negotiate(r, requestVersion(attrs))
	switch {
	case err == nil:
		attrs.Set(rest.FormatAttr, res.Format.Name)
		attrs.Set(rest.MediaTypeAttr, res.MediaType)
		return res.Format, true

	case errors.Is(err, negotiation.ErrStopNegotiation):
		reg := c.negotiator.Registry()
		if f, ok := reg.Lookup(attrs.String(rest.FormatAttr)); ok {
			return f, true
		}

		f, ok := reg.Lookup(c.defaultFormat)
		if !ok {
			return negotiation.Format{}, false
		}

		mt, _ := reg.MediaTypeOf(f.Name)
		attrs.Set(rest.FormatAttr, f.Name)
		attrs.Set(rest.MediaTypeAttr, mt)
		return f, true

	default:
		return negotiation.Format{}, false
	}
}

// report logs err at a level befitting code.
func (c *ExceptionController) report(r *http.Request, err error, code int, f negotiation.Format) {
	lc := &logger.LogContext{
		Request: r,
		Error:   err,
		Format:  f.Name,
		Version: requestVersion(rest.AttributesFromContext(r.Context())).String(),
		Data:    map[string]any{"class": exception.ClassOf(err), "status_code": code},
	}

	if code >= http.StatusInternalServerError {
		c.logger.Error(err.Error(), lc)
		return
	}

	c.logger.Info(err.Error(), lc)
}

// plain writes a text/plain response.
// plain never panics.
func (c *ExceptionController) plain(w http.ResponseWriter, code int, headers http.Header, body string) {
	defer func() { _ = recover() }()

	h := w.Header()
	for k, vals := range headers {
		h[k] = append([]string(nil), vals...)
	}

	h.Del("Content-Length")
	h.Set("Content-Type", "text/plain; charset=UTF-8")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

// requestVersion returns the version recorded in attrs.
func requestVersion(attrs rest.Attributes) version.Version {
	v, ok := attrs.Get(rest.VersionAttr)
	if !ok {
		return version.None
	}

	switch v := v.(type) {
	case version.Version:
		return v
	case string:
		return version.New(v)
	default:
		return version.None
	}
}
