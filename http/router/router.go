package router

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/controller"
	"github.com/xy-planning-network/rest/exception"
	"github.com/xy-planning-network/rest/http/middleware"
)

// FormatVar names the route variable declaring the format of a response, e.g., "/reports/{id}.{_format}".
const FormatVar = rest.FormatAttr

// A HandlerFunc handles a request, returning an error when it cannot.
// The error is rendered as the response by the [middleware.ExceptionHandler] of the [*Router].
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// A Route maps a path and HTTP method to a [HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests for resources to their handlers,
// rendering any error those handlers return through a [middleware.ExceptionHandler].
type Router struct {
	Env           rest.Environment
	everyReqStack []middleware.Adapter
	ex            middleware.ExceptionHandler
	logReq        middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
//
// Errors are rendered by ex.
// If ex is nil, a [*controller.ExceptionController] with its defaults renders them.
func New(env rest.Environment, ex middleware.ExceptionHandler, logReq middleware.Adapter) *Router {
	if ex == nil {
		ex = controller.NewExceptionController()
	}

	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	rt := &Router{Env: env, ex: ex, logReq: logReq, r: mux.NewRouter()}
	rt.r.NotFoundHandler = rt.raise(http.StatusNotFound, "No route found for %s %s")
	rt.r.MethodNotAllowedHandler = rt.raise(http.StatusMethodNotAllowed, "No route found for %s %s: Method Not Allowed")

	return rt
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *Router) CatchAll(handler HandlerFunc) {
	r.r.PathPrefix("/").Handler(r.chain(handler, r.everyReqStack))
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [HandlerFunc] as the default function
// for when no other registered Route is matched.
//
// By default, a 404 exception is rendered.
func (r *Router) HandleNotFound(handler HandlerFunc) {
	r.r.NotFoundHandler = r.chain(handler, []middleware.Adapter{r.logReq})
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append([]middleware.Adapter{}, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)
		r.r.Handle(route.Path, r.chain(route.Handler, mws)).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

func (r *Router) SubrouterHost(host string) *Router {
	return &Router{
		Env:           r.Env,
		ex:            r.ex,
		logReq:        r.logReq,
		r:             r.r.Host(host).Subrouter(),
		everyReqStack: r.everyReqStack,
	}
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		Env:           r.Env,
		ex:            r.ex,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: r.everyReqStack,
	}
}

// chain glues mws to handler.
// The format route variable is recorded before any of mws run
// and panics are reported before handler is recovered.
func (r *Router) chain(handler HandlerFunc, mws []middleware.Adapter) http.Handler {
	adpts := append([]middleware.Adapter{formatVar, middleware.ReportPanic(r.Env)}, mws...)
	return middleware.Chain(r.serve(handler), adpts...)
}

// serve calls h, handing any error it returns, or panic it raises, to the ExceptionHandler.
func (r *Router) serve(h HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}

			if hub := sentry.GetHubFromContext(req.Context()); hub != nil {
				hub.RecoverWithContext(req.Context(), p)
			}

			r.ex.Show(w, req, exception.New(exception.RuntimeClass, fmt.Sprintf("panic: %v", p)))
		}()

		if err := h(w, req); err != nil {
			r.ex.Show(w, req, err)
		}
	})
}

// raise constructs an http.Handler rendering an HTTP exception with code.
func (r *Router) raise(code int, format string) http.Handler {
	return middleware.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			r.ex.Show(w, req, exception.NewHTTP(code, fmt.Sprintf(format, req.Method, req.URL.Path)))
		}),
		r.logReq,
	)
}

// formatVar records the format route variable under rest.FormatAttr.
func formatVar(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := mux.Vars(r)[FormatVar]
		if !ok || f == "" {
			h.ServeHTTP(w, r)
			return
		}

		ctx, attrs := rest.NewAttributesContext(r.Context())
		attrs.Set(rest.FormatAttr, f)
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}
