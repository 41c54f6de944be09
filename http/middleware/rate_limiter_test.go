package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/rest/http/middleware"
)

func TestVisitorFetch(t *testing.T) {
	t.Run("Serial", func(t *testing.T) {
		// Arrange
		vs := middleware.NewVisitors()

		// Act
		v1 := vs.Fetch("127.0.0.1")
		time.Sleep(1 * time.Millisecond)
		v2 := vs.Fetch("127.0.0.1")

		// Assert
		require.Equal(t, v1.Limiter, v2.Limiter)
		require.True(t, v1.LastSeen.Before(v2.LastSeen))
	})

	t.Run("Concurrent", func(t *testing.T) {
		// Arrange
		var wg sync.WaitGroup
		vs := middleware.NewVisitors()
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				// Act
				vs.Fetch("127.0.0.1")
			}()
		}

		// Assert
		require.NotPanics(t, wg.Wait)
	})
}

func TestRateLimit(t *testing.T) {
	tcs := []struct {
		name        string
		ex          middleware.ExceptionHandler
		contentType string
		body        string
	}{
		{"Plain", nil, "text/plain; charset=utf-8", "Too Many Requests\n"},
		{"Exception", newExceptionController(), "application/json", `"Too Many Requests"`},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			vs := middleware.NewVisitorsWithLimit(0.001, 1)
			h := middleware.RateLimit(vs, tc.ex)(NoopHandler())
			request := func() *httptest.ResponseRecorder {
				w := httptest.NewRecorder()
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("Accept", "application/json")
				r.Header.Set("X-Forwarded-For", "1.1.1.1")
				h.ServeHTTP(w, r)
				return w
			}

			// Act
			first := request()
			second := request()

			// Assert
			require.Equal(t, http.StatusOK, first.Code)
			require.Equal(t, http.StatusTooManyRequests, second.Code)
			require.Contains(t, second.Header().Get("Content-Type"), tc.contentType)
			require.Contains(t, second.Body.String(), tc.body)
		})
	}
}
