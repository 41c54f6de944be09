package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/buffer"
	"github.com/xy-planning-network/rest/exception"
	"github.com/xy-planning-network/rest/http/middleware"
)

func TestBuffer(t *testing.T) {
	t.Run("Flushes", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		var level int
		var ok bool

		// Act
		middleware.Buffer()(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
			level, ok = rest.AttributesFromContext(rx.Context()).Int(rest.BufferLevelAttr)
			wx.WriteHeader(http.StatusCreated)
			fmt.Fprint(wx, "created")

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			require.Empty(t, w.Body.String())
		})).ServeHTTP(w, r)

		// Assert
		require.True(t, ok)
		require.Zero(t, level)
		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, "created", w.Body.String())
	})

	t.Run("Nested", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		var level, depth int

		// Act
		middleware.Chain(
			http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
				level, _ = rest.AttributesFromContext(rx.Context()).Int(rest.BufferLevelAttr)
				s, _ := buffer.FromContext(rx.Context())
				depth = s.Depth()
				fmt.Fprint(wx, "inner")
			}),
			middleware.Buffer(),
			middleware.Buffer(),
		).ServeHTTP(w, r)

		// Assert
		require.Zero(t, level)
		require.Equal(t, 2, depth)
		require.Equal(t, "inner", w.Body.String())
	})

	t.Run("Discarded-By-Exception", func(t *testing.T) {
		// Arrange
		ex := newExceptionController()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept", "application/json")

		// Act
		middleware.Buffer()(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
			fmt.Fprint(wx, "partial")
			ex.Show(wx, rx, exception.NewHTTP(http.StatusConflict, "already exists"))
		})).ServeHTTP(w, r)

		// Assert
		require.Equal(t, http.StatusConflict, w.Code)
		require.NotContains(t, w.Body.String(), "partial")
		require.Contains(t, w.Body.String(), "Conflict")
	})
}
