package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/xy-planning-network/rest"
)

// ForwardedProtoHeader is the header a proxy in front of the service sets to the scheme clients requested.
const ForwardedProtoHeader = "X-Forwarded-Proto"

// ForceHTTPS permanently redirects HTTP requests to HTTPS unless env is development.
//
// Requests served over TLS pass through.
// So do requests with any of headers set to "https", which defaults to ForwardedProtoHeader
// for a service running behind a proxy.
func ForceHTTPS(env rest.Environment, headers ...string) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	if len(headers) == 0 {
		headers = []string{ForwardedProtoHeader}
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS != nil || forwardedHTTPS(r, headers) {
				handler.ServeHTTP(w, r)
				return
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}

func forwardedHTTPS(r *http.Request, headers []string) bool {
	for _, h := range headers {
		if strings.EqualFold(r.Header.Get(h), "https") {
			return true
		}
	}

	return false
}
