package app

import (
	"context"
	"io/fs"
	"net"
	"net/http"
	"os"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/config"
	"github.com/xy-planning-network/rest/controller"
	"github.com/xy-planning-network/rest/http/middleware"
	"github.com/xy-planning-network/rest/http/req"
	"github.com/xy-planning-network/rest/http/router"
	"github.com/xy-planning-network/rest/http/template"
	"github.com/xy-planning-network/rest/listener"
	"github.com/xy-planning-network/rest/logger"
	"github.com/xy-planning-network/rest/negotiation"
	"github.com/xy-planning-network/rest/view"
)

// build constructs every component of a from its config.
func (a *App) build() error {
	cfg := a.cfg

	h, err := cfg.Hierarchy()
	if err != nil {
		return err
	}

	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	n, err := cfg.Negotiator(reg)
	if err != nil {
		return err
	}

	e, err := cfg.Extractor()
	if err != nil {
		return err
	}

	pp, err := cfg.PathPattern()
	if err != nil {
		return err
	}

	// Exceptions are rendered in the format the request declares whenever Accept settles nothing.
	exNegotiator, err := negotiation.NewNegotiator(reg, negotiation.Rule{Stop: true})
	if err != nil {
		return err
	}

	a.parser = req.NewParser(req.WithRegistry(reg))

	engine := defaultParser(cfg, a.tmpls)
	a.views = view.NewHandler(append([]view.HandlerOptFn{
		view.WithEngine(engine),
		view.WithLogger(a.l),
		view.WithRegistry(reg),
	}, a.encoders...)...)

	copts := []controller.ControllerOptFn{
		controller.WithCodes(cfg.Codes(h)),
		controller.WithDebug(cfg.IsDebug()),
		controller.WithDefaultFormat(cfg.Exception.DefaultFormat),
		controller.WithEngine(engine),
		controller.WithLogger(a.l),
		controller.WithMessages(cfg.Messages(h)),
		controller.WithNegotiator(exNegotiator),
		controller.WithPathPattern(pp),
		controller.WithViewHandler(a.views),
	}
	if a.wrapper != nil {
		copts = append(copts, controller.WithWrapperHandler(a.wrapper))
	}
	a.controller = controller.NewExceptionController(copts...)

	a.listener = listener.New(
		listener.WithExtractor(e),
		listener.WithLogger(a.l),
		listener.WithNegotiator(n),
	)

	a.Router = defaultRouter(cfg, a.l, a.controller, a.listener, a.mws)

	if a.srv == nil {
		a.srv = defaultServer(cfg)
	}
	a.srv.Handler = a.Router
	if a.srv.BaseContext == nil {
		ctx := a.ctx
		a.srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return nil
}

// defaultLogger constructs a logger.Logger at the configured level,
// forwarding to Sentry when a DSN is configured.
func defaultLogger(cfg *config.Config) logger.Logger {
	l := logger.New(
		logger.WithEnv(cfg.Env.String()),
		logger.WithLevel(logger.NewLogLevel(cfg.Log.Level)),
	)

	if rl, ok := l.(*logger.RestLogger); ok && cfg.Log.SentryDSN != "" {
		return logger.NewSentryLogger(rl, cfg.Log.SentryDSN)
	}

	return l
}

// defaultParser constructs a *template.Parse rendering exception templates.
//
// defaultParser makes available these functions in a template:
//
//   - "env"
//   - "nonce"
//   - "rootUrl"
//   - "statusText"
func defaultParser(cfg *config.Config, files fs.FS) *template.Parse {
	if files == nil && cfg.Templates.Dir != "" {
		files = os.DirFS(cfg.Templates.Dir)
	}

	return template.NewParser(
		template.WithFS(files),
		template.WithReload(cfg.Templates.Reload),
		template.WithFn(template.Env(cfg.Env)),
		template.WithFn(template.Nonce()),
		template.WithFn(template.RootUrl(rest.EnvVarOrURL("BASE_URL", cfg.Server.BaseURL))),
		template.WithFn(template.StatusText()),
	)
}

// defaultRouter constructs a *router.Router applying the default middlewares to every request.
func defaultRouter(
	cfg *config.Config,
	l logger.Logger,
	ex *controller.ExceptionController,
	lsn *listener.Listener,
	mws []middleware.Adapter,
) *router.Router {
	logReq := middleware.LogRequest(l)
	route := router.New(cfg.Env, ex, logReq)
	if cfg.Server.ForceHTTPS {
		route.OnEveryRequest(middleware.ForceHTTPS(cfg.Env))
	}
	route.OnEveryRequest(
		middleware.InjectIPAddress(),
		middleware.RateLimit(middleware.NewVisitorsWithLimit(cfg.Server.RateLimit, cfg.Server.RateBurst), ex),
		middleware.RequestID(),
		logReq,
		middleware.CORS(cfg.Server.CORSOrigin),
		middleware.Listen(lsn, ex),
		middleware.Buffer(),
	)
	route.OnEveryRequest(mws...)

	return route
}

// defaultServer constructs a default *http.Server.
func defaultServer(cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr,
		IdleTimeout:  cfg.Server.IdleTimeout.Std(),
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}
}
