package middleware

import (
	"net/http"

	"github.com/xy-planning-network/rest/listener"
)

// Listen resolves the version and format of every request with l.
//
// When l fails to resolve a request, the error is handed to ex and the request goes no further.
//
// If l or ex is nil, NoopAdapter returns and this middleware does nothing.
func Listen(l *listener.Listener, ex ExceptionHandler) Adapter {
	if l == nil || ex == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, err := l.OnRequest(r)
			if err != nil {
				ex.Show(w, r, err)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
