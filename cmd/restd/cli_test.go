package main

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/rest/app"
	"github.com/xy-planning-network/rest/config"
	"github.com/xy-planning-network/rest/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENVIRONMENT", "REST_ADDR", "REST_DEBUG", "LOG_LEVEL", "SENTRY_DSN", "BASE_URL", "REST_CORS_ORIGIN", "REST_FORCE_HTTPS", "REST_TEMPLATES_DIR"} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCmd(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("env: LOCAL"), 0o600))

	tcs := []struct {
		name     string
		path     string
		expected string
		err      bool
	}{
		{"Example", "rest.example.yaml", "configuration ok\n", false},
		{"Missing-Uses-Defaults", filepath.Join(dir, "missing.yaml"), "configuration ok\n", false},
		{"Invalid", bad, "", true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			out, err := execute(t, "validate", "-c", tc.path, "--env-file", filepath.Join(dir, ".env"))

			// Assert
			require.Equal(t, tc.expected, out)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNegotiateCmd(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")

	tcs := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			"Accept",
			[]string{"--path", "/api/reports", "--accept", "application/xml"},
			[]string{`version: "" (set: false)`, "format: xml", "media type: application/xml"},
		},
		{
			"Versioned-Media-Type",
			[]string{"--path", "/api/reports", "--accept", "application/json;version=2"},
			[]string{`version: "2" (set: true)`, "format: json"},
		},
		{
			"Extension",
			[]string{"--path", "/api/reports/1.yaml", "--accept", "application/json"},
			[]string{"format: yaml"},
		},
		{
			"Fallback",
			[]string{"--path", "/api/reports", "--accept", "image/png"},
			[]string{"format: json", "media type: application/json"},
		},
		{
			"Stopped",
			[]string{"--path", "/", "--accept", "image/png"},
			[]string{"stopped: "},
		},
		{
			"Format-Attribute",
			[]string{"--path", "/", "--accept", "application/json", "--format", "xml"},
			[]string{"format: xml"},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			out, err := execute(t, append([]string{"negotiate", "-c", "rest.example.yaml", "--env-file", envFile}, tc.args...)...)

			// Assert
			require.NoError(t, err)
			for _, e := range tc.expected {
				require.Contains(t, out, e)
			}
		})
	}
}

func TestReports(t *testing.T) {
	// Arrange
	clearEnv(t)
	cfg, err := config.Load("rest.example.yaml")
	require.NoError(t, err)

	a, err := app.New(cfg, app.WithLogger(logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))))
	require.NoError(t, err)
	newReports(a).routes()

	serve := func(method, target, accept string, body io.Reader) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(method, target, body)
		r.Header.Set("Accept", accept)
		if body != nil {
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		a.ServeHTTP(w, r)
		return w
	}

	// Act + Assert
	w := serve(http.MethodPost, "/api/reports", "application/json", strings.NewReader(url.Values{"title": {"Q3"}}.Encode()))
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "/api/reports/1", w.Header().Get("Location"))
	require.Contains(t, w.Body.String(), `"title":"Q3"`)

	w = serve(http.MethodPost, "/api/reports", "application/json", strings.NewReader(""))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), `"errors":[{"field":"title","got":"","rule":"required; string"}]`)

	w = serve(http.MethodGet, "/api/reports/1", "application/xml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "<title>Q3</title>")

	w = serve(http.MethodGet, "/api/reports/1.yaml", "application/json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "title: Q3")

	w = serve(http.MethodGet, "/api/reports/9", "application/json", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Report 9 not found")

	w = serve(http.MethodGet, "/api/reports", "application/json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"reports":[{"id":1`)
}
