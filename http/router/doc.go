/*
Package router routes HTTP requests to handlers that may fail.

A [*Router] utilizes [mux.Router] for its implementation,
and so functions as thin wrapper around that package.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
A [HandlerFunc] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

A [HandlerFunc] returns an error instead of writing one.
The [*Router] renders that error through its [middleware.ExceptionHandler],
which negotiates the representation the client accepts.
Panics are rendered the same way, after being reported to Sentry outside of development.
Unmatched routes and methods render 404 and 405 exceptions.

A route declaring a {_format} variable fixes the format of its response,
e.g., "/reports/{id}.{_format}".
*/
package router
