package middleware_test

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/http/middleware"
)

func TestForceHTTPS(t *testing.T) {
	tcs := []struct {
		name     string
		env      rest.Environment
		headers  []string
		setup    func(r *http.Request)
		code     int
		location string
	}{
		{"Development", rest.Development, nil, func(*http.Request) {}, http.StatusOK, ""},
		{"Forwarded-HTTPS", rest.Testing, nil, func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "https") }, http.StatusOK, ""},
		{"TLS", rest.Production, nil, func(r *http.Request) { r.TLS = &tls.ConnectionState{} }, http.StatusOK, ""},
		{"Forwarded-HTTP", rest.Testing, nil, func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "http") }, http.StatusPermanentRedirect, "https://example.com/reports?page=2"},
		{"Custom-Header", rest.Staging, []string{"X-Scheme"}, func(r *http.Request) { r.Header.Set("X-Scheme", "HTTPS") }, http.StatusOK, ""},
		{"Custom-Header-Ignores-Default", rest.Staging, []string{"X-Scheme"}, func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "https") }, http.StatusPermanentRedirect, "https://example.com/reports?page=2"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "http://example.com/reports?page=2", nil)
			tc.setup(r)

			// Act
			middleware.ForceHTTPS(tc.env, tc.headers...)(NoopHandler()).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}
}
