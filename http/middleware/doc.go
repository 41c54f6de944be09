/*
The middleware package defines what a middleware is in rest and a set of basic middlewares.

The available middlewares are:
- Buffer
- CORS
- ForceHTTPS
- InjectIPAddress
- Listen
- LogRequest
- RateLimit
- ReportPanic
- RequestID

Due to the amount of configuration required, middleware does not provide a default middleware chain
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.ForceHTTPS(env),
		middleware.ReportPanic(env),
		middleware.InjectIPAddress(),
		middleware.RateLimit(vs, exceptionController),
		middleware.RequestID(),
		middleware.LogRequest(log),
		middleware.Listen(listener, exceptionController),
		middleware.Buffer(),
	}

*/
package middleware
