package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/rest/logger"
)

func TestLogContextMarshalText(t *testing.T) {
	// Arrange
	lc := logger.LogContext{}

	// Act
	b, err := lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, []byte("{}"), b)

	// Arrange
	lc = logger.LogContext{Data: map[string]any{"test": "data"}}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"data":{"test":"data"}}`, string(b))

	// Arrange
	lc = logger.LogContext{Error: errors.New("test"), Format: "xml", Version: "1.2"}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"error":"test","format":"xml","version":"1.2"}`, string(b))

	// Arrange
	expected := map[string]any{
		"request": map[string]any{
			"method": http.MethodGet,
			"url":    "https://example.com",
			"header": map[string]any{
				"Accept": []any{"application/json"},
			},
		},
	}

	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r.Header.Set("Accept", "application/json")
	lc = logger.LogContext{Request: r}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	m := make(map[string]any)
	require.Nil(t, json.Unmarshal(b, &m))
	require.Equal(t, expected, m)
}

func TestLogContextMarshalTextJSONBody(t *testing.T) {
	// Arrange
	body := `{"name":"Edmund Husserl"}`
	r := httptest.NewRequest(http.MethodPost, "https://example.com/test", bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	lc := logger.LogContext{Request: r}

	// Act
	b, err := lc.MarshalText()

	// Assert
	require.Nil(t, err)

	m := make(map[string]map[string]any)
	require.Nil(t, json.Unmarshal(b, &m))
	require.Equal(t, map[string]any{"name": "Edmund Husserl"}, m["request"]["json"])

	rest, err := io.ReadAll(r.Body)
	require.Nil(t, err)
	require.Equal(t, body, string(rest))
}

func TestLogContextString(t *testing.T) {
	lc := logger.LogContext{Data: map[string]any{"bad": make(chan int)}}
	require.Contains(t, lc.String(), "json: unsupported type")

	lc = logger.LogContext{Format: "html"}
	require.Equal(t, `{"format":"html"}`, lc.String())
}

func TestCurrentCaller(t *testing.T) {
	require.Regexp(t, `testing/testing\.go:\d+`, logger.CurrentCaller())
}
