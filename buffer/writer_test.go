package buffer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/rest/buffer"
)

func TestWriterClose(t *testing.T) {
	// Arrange
	_, s := buffer.NewContext(context.Background())
	rec := httptest.NewRecorder()
	w := buffer.NewWriter(rec, s)

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusAccepted)
	_, err := w.Write([]byte("hello"))
	require.NoError(t, err)

	require.Empty(t, rec.Body.String())
	require.Equal(t, 1, s.Depth())

	// Act
	err = w.Close()

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "hello", rec.Body.String())
	require.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	require.Zero(t, s.Depth())

	require.NoError(t, w.Close())
	require.Equal(t, "hello", rec.Body.String())
}

func TestWriterAfterDrain(t *testing.T) {
	// Arrange
	_, s := buffer.NewContext(context.Background())
	rec := httptest.NewRecorder()
	w := buffer.NewWriter(rec, s)

	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte("partial"))
	require.NoError(t, err)

	// Act
	drained := buffer.Drain(s, 0)
	w.WriteHeader(http.StatusNotFound)
	_, err = w.Write([]byte("replacement"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// Assert
	require.Equal(t, "partial", string(drained))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "replacement", rec.Body.String())
}

func TestWriterCloseNested(t *testing.T) {
	// Arrange
	_, s := buffer.NewContext(context.Background())
	rec := httptest.NewRecorder()
	outer := buffer.NewWriter(rec, s)
	_, err := outer.Write([]byte("outer "))
	require.NoError(t, err)

	inner := buffer.NewWriter(outer, s)
	_, err = inner.Write([]byte("inner"))
	require.NoError(t, err)

	// Act
	require.NoError(t, outer.Close())

	// Assert
	require.Equal(t, "outer inner", rec.Body.String())
	require.Zero(t, s.Depth())
	require.Equal(t, rec, outer.Unwrap())
}
