/*
Package app initializes and manages a rest service with sane defaults.

# App

The main entrypoint to package app is the [App] type.
An [App] ought to be constructed with [New] using a [*config.Config].

[New] wires every component of a rest service together:
  - a [*listener.Listener] resolving the version and format of each request
  - a [*controller.ExceptionController] rendering errors in the negotiated format
  - a [*view.ViewHandler] rendering successful responses in the negotiated format
  - a [*router.Router] whose handlers return errors instead of writing them
  - a [*req.Parser] decoding and validating request payloads, cf. [*App.Parse]
  - an [*http.Server]

Handlers registered on an [App] respond with [*App.Respond]
and return errors for the [*controller.ExceptionController] to render:

	a.Handle(router.Route{
		Path:   "/reports/{id}",
		Method: http.MethodGet,
		Handler: func(w http.ResponseWriter, r *http.Request) error {
			report, err := find(r)
			if err != nil {
				return exception.NewHTTP(http.StatusNotFound, "no such report", exception.WithCause(err))
			}

			return a.Respond(w, r, report)
		},
	})

[*App.Guide] begins the web server.
Stop that web server with [*App.Shutdown]
or send a signal [*App.Guide] listens for.

# Configuration

An [App] is configured through a [*config.Config], itself read from a YAML or TOML file
and overridden by environment variables; cf. [config.Load].
*/
package app
