package app_test

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/app"
	"github.com/xy-planning-network/rest/config"
	"github.com/xy-planning-network/rest/exception"
	"github.com/xy-planning-network/rest/http/router"
	"github.com/xy-planning-network/rest/logger"
	"github.com/xy-planning-network/rest/view"
)

const cfgYAML = `
env: PRODUCTION
server:
  rate_limit: 1000
  rate_burst: 1000
versioning:
  strategies:
    - type: header
      key: X-Accept-Version
rules:
  - path: ^/api
    priorities: [json, xml]
  - stop: true
exception:
  classes:
    ReportMissing: NotFound
  codes:
    ReportMissing: 404
  messages:
    ReportMissing: true
`

func newApp(t *testing.T) *app.App {
	t.Helper()
	for _, key := range []string{"ENVIRONMENT", "REST_ADDR", "REST_DEBUG", "LOG_LEVEL", "SENTRY_DSN", "BASE_URL", "REST_CORS_ORIGIN", "REST_FORCE_HTTPS", "REST_TEMPLATES_DIR"} {
		t.Setenv(key, "")
	}

	cfg, err := config.Parse([]byte(cfgYAML), ".yaml")
	require.NoError(t, err)

	a, err := app.New(cfg, app.WithLogger(logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))))
	require.NoError(t, err)

	a.Handle(router.Route{
		Path:   "/api/reports/{id}",
		Method: http.MethodGet,
		Handler: func(w http.ResponseWriter, r *http.Request) error {
			id := r.URL.Path[len("/api/reports/"):]
			if id != "1" {
				return exception.New("ReportMissing", fmt.Sprintf("Report %s not found", id))
			}

			v := rest.AttributesFromContext(r.Context()).String(rest.VersionAttr)
			return a.Respond(w, r, map[string]string{"id": id, "version": v}, view.Header("X-Report", id))
		},
	})

	a.Handle(router.Route{
		Path:   "/api/reports",
		Method: http.MethodPost,
		Handler: func(w http.ResponseWriter, r *http.Request) error {
			var in struct {
				Title string `json:"title" validate:"required"`
			}
			if err := a.Parse(r, &in); err != nil {
				return err
			}

			return a.Respond(w, r, in, view.Code(http.StatusCreated))
		},
	})

	a.Handle(router.Route{
		Path:   "/pages/{id}",
		Method: http.MethodGet,
		Handler: func(w http.ResponseWriter, r *http.Request) error {
			return exception.NewHTTP(http.StatusNotFound, "no such page")
		},
	})

	return a
}

func TestApp(t *testing.T) {
	tcs := []struct {
		name        string
		path        string
		accept      string
		version     string
		code        int
		contentType string
		body        string
	}{
		{"Respond", "/api/reports/1", "application/json", "2", http.StatusOK, "application/json", `{"id":"1","version":"2"}`},
		{"Mapped-Exception-XML", "/api/reports/2", "application/xml", "", http.StatusNotFound, "text/xml", "<message>Report 2 not found</message>"},
		{"Mapped-Exception", "/api/reports/2", "application/json", "", http.StatusNotFound, "application/json", `"message":"Report 2 not found"`},
		{"Not-Acceptable", "/api/reports/1", "image/png", "", http.StatusNotAcceptable, "text/html", `The server returned a "406 Not Acceptable".`},
		{"No-Accept", "/nowhere", "", "", http.StatusNotFound, "text/html", `The server returned a "404 Not Found".`},
		{"No-Accept-API", "/api/reports/1", "", "", http.StatusOK, "application/json", `"id":"1"`},
		{"HTML-Exception", "/pages/1", "text/html", "", http.StatusNotFound, "text/html", `The server returned a "404 Not Found".`},
		{"Unknown-Route", "/nowhere", "application/json", "", http.StatusNotFound, "application/json", `"message":"Not Found"`},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			a := newApp(t)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.accept != "" {
				r.Header.Set("Accept", tc.accept)
			}
			if tc.version != "" {
				r.Header.Set("X-Accept-Version", tc.version)
			}

			// Act
			a.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Contains(t, w.Header().Get("Content-Type"), tc.contentType)
			require.Contains(t, w.Body.String(), tc.body)
			require.NotEmpty(t, w.Header().Get("Content-Type"))
		})
	}
}

func TestAppMaintenance(t *testing.T) {
	// Arrange
	a := newApp(t)
	a.Maintenance(600)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/anything", nil)
	r.Header.Set("Accept", "application/json")

	// Act
	a.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Equal(t, "600", w.Header().Get("Retry-After"))
}

func TestAppParse(t *testing.T) {
	tcs := []struct {
		name string
		body string
		code int
		resp string
	}{
		{"Created", `{"title":"Q3"}`, http.StatusCreated, `{"title":"Q3"}`},
		{"Invalid", `{}`, http.StatusUnprocessableEntity, `{"code":422,"message":"Unprocessable Entity","errors":[{"field":"title","got":"","rule":"required; string"}]}`},
		{"Malformed", `{`, http.StatusBadRequest, `{"code":400,"message":"Bad Request"}`},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			a := newApp(t)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(tc.body))
			r.Header.Set("Accept", "application/json")
			r.Header.Set("Content-Type", "application/json")

			// Act
			a.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.JSONEq(t, tc.resp, w.Body.String())
		})
	}
}

func TestAppForceHTTPS(t *testing.T) {
	// Arrange
	t.Setenv("REST_FORCE_HTTPS", "true")
	t.Setenv("ENVIRONMENT", "")
	cfg, err := config.Parse([]byte(cfgYAML), ".yaml")
	require.NoError(t, err)

	a, err := app.New(cfg, app.WithLogger(logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "http://example.com/api/reports/1", nil)

	// Act
	a.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusPermanentRedirect, w.Code)
	require.Equal(t, "https://example.com/api/reports/1", w.Header().Get("Location"))
}

func TestAppServe(t *testing.T) {
	// Arrange
	a := newApp(t)
	require.ErrorIs(t, a.Shutdown(), app.ErrNotRunning)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)

	// Act
	go func() { done <- a.Serve(ln) }()

	// Assert
	require.Eventually(t, func() bool {
		req, err := http.NewRequest(http.MethodGet, "http://"+ln.Addr().String()+"/api/reports/1", nil)
		if err != nil {
			return false
		}
		req.Header.Set("Accept", "application/json")

		res, err := http.DefaultClient.Do(req)
		if err != nil {
			return false
		}
		defer res.Body.Close()

		return res.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool { return a.Shutdown() == nil }, time.Second, 10*time.Millisecond)
	require.NoError(t, <-done)
}

func TestNewDefaults(t *testing.T) {
	// Arrange + Act
	a, err := app.New(nil, app.WithLogger(logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))))

	// Assert
	require.NoError(t, err)
	require.Equal(t, ":8080", a.Server().Addr)
	require.NotNil(t, a.Controller())
	require.NotNil(t, a.Listener())
	require.Equal(t, rest.Development, a.Config().Env)
}

func TestNewBadOption(t *testing.T) {
	// Arrange + Act
	a, err := app.New(nil, app.WithLogger(nil))

	// Assert
	require.Nil(t, a)
	require.ErrorIs(t, err, rest.ErrBadConfig)
}
