package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/config"
	"github.com/xy-planning-network/rest/controller"
	"github.com/xy-planning-network/rest/exception"
	"github.com/xy-planning-network/rest/http/middleware"
	"github.com/xy-planning-network/rest/http/req"
	"github.com/xy-planning-network/rest/http/router"
	"github.com/xy-planning-network/rest/listener"
	"github.com/xy-planning-network/rest/logger"
	"github.com/xy-planning-network/rest/view"
)

// An App manages and exposes all components of a rest service to one another.
type App struct {
	*router.Router

	cfg        *config.Config
	controller *controller.ExceptionController
	ctx        context.Context
	encoders   []view.HandlerOptFn
	l          logger.Logger
	listener   *listener.Listener
	mws        []middleware.Adapter
	parser     *req.Parser
	srv        *http.Server
	tmpls      fs.FS
	views      *view.ViewHandler
	wrapper    exception.WrapperHandler

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
}

// New constructs an *App from cfg and the provided options.
// A nil cfg uses config.Default.
//
// Options are applied first, then every component they did not set is constructed from cfg.
func New(cfg *config.Config, opts ...AppOption) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	a := &App{cfg: cfg, ctx: context.Background()}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, fmt.Errorf("%w: %s", rest.ErrBadConfig, err)
		}
	}

	if a.l == nil {
		a.l = defaultLogger(cfg)
	}

	if err := a.build(); err != nil {
		return nil, fmt.Errorf("%w: %s", rest.ErrBadConfig, err)
	}

	return a, nil
}

func (a *App) Config() *config.Config                      { return a.cfg }
func (a *App) Controller() *controller.ExceptionController { return a.controller }
func (a *App) Listener() *listener.Listener                { return a.listener }
func (a *App) Logger() logger.Logger                       { return a.l }
func (a *App) Server() *http.Server                        { return a.srv }

// Parse decodes the payload of r into structPtr and validates it.
// The errors returned are ready to be returned from a router.HandlerFunc.
func (a *App) Parse(r *http.Request, structPtr any) error {
	return a.parser.Parse(r, structPtr)
}

// Respond renders data in the format negotiated for r.
// Errors ought to be returned from the handler so the ExceptionController renders them.
func (a *App) Respond(w http.ResponseWriter, r *http.Request, data any, opts ...view.Fn) error {
	return a.views.Respond(w, r, data, opts...)
}

// Maintenance routes every request to a 503 exception
// advising clients to retry after retryAfter seconds.
func (a *App) Maintenance(retryAfter int) {
	a.CatchAll(func(w http.ResponseWriter, r *http.Request) error {
		return exception.NewHTTP(
			http.StatusServiceUnavailable,
			"down for maintenance",
			exception.WithHeader("Retry-After", strconv.Itoa(retryAfter)),
		)
	})
}

// Guide begins the web server.
//
// These, and (*App).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (a *App) Guide() error {
	ln, err := net.Listen("tcp", a.srv.Addr)
	if err != nil {
		return fmt.Errorf("could not listen: %w", err)
	}

	return a.Serve(ln)
}

// Serve begins the web server on ln, stopping as Guide does.
func (a *App) Serve(ln net.Listener) error {
	ctx, cancel := context.WithCancel(a.ctx)
	a.mu.Lock()
	a.cancel = cancel
	a.running = true
	a.mu.Unlock()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			a.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			cancel()
		case <-ctx.Done():
		}
	}()

	errs := make(chan error, 1)
	go func() {
		a.l.Info(fmt.Sprintf("running web server at %s", ln.Addr()), nil)
		if err := a.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("could not serve: %w", err)
			a.l.Error(err.Error(), nil)
			errs <- err
		}
	}()

	select {
	case <-ctx.Done():
		return a.shutdown()
	case err := <-errs:
		cancel()
		_ = a.shutdown()
		return err
	}
}

// Shutdown stops the web server begun by Guide or Serve.
func (a *App) Shutdown() error {
	a.mu.Lock()
	cancel, running := a.cancel, a.running
	a.mu.Unlock()

	if !running {
		return ErrNotRunning
	}

	cancel()
	return nil
}

// shutdown gracefully shuts the web server down, waiting up to the configured shutdown timeout.
func (a *App) shutdown() error {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return nil
	}
	a.running = false
	a.mu.Unlock()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	a.l.Info("shutting down web server", nil)
	if err := a.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	a.l.Info("web server shutdown successfully", nil)
	return nil
}
