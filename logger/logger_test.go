package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/rest/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger/logger_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`'(.*)'`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	for _, tc := range []struct {
		val      string
		expected logger.LogLevel
	}{
		{"DEBUG", logger.LogLevelDebug},
		{"INFO", logger.LogLevelInfo},
		{"WARN", logger.LogLevelWarn},
		{"ERROR", logger.LogLevelError},
		{"FATAL", logger.LogLevelFatal},
		{"debug", logger.LogLevelUnk},
		{"", logger.LogLevelUnk},
	} {
		t.Run(tc.val, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.val))
		})
	}
}

func TestRestLogger(t *testing.T) {
	t.Setenv("SENTRY_DSN", "")

	tcs := []struct {
		name   string
		level  logger.LogLevel
		fn     func(logger.Logger) func(string, *logger.LogContext)
		expect string
	}{
		{"Debug-Below-Info", logger.LogLevelInfo, func(l logger.Logger) func(string, *logger.LogContext) { return l.Debug }, ""},
		{"Debug", logger.LogLevelDebug, func(l logger.Logger) func(string, *logger.LogContext) { return l.Debug }, "[DEBUG]"},
		{"Info", logger.LogLevelInfo, func(l logger.Logger) func(string, *logger.LogContext) { return l.Info }, "[INFO]"},
		{"Warn", logger.LogLevelInfo, func(l logger.Logger) func(string, *logger.LogContext) { return l.Warn }, "[WARN]"},
		{"Error", logger.LogLevelInfo, func(l logger.Logger) func(string, *logger.LogContext) { return l.Error }, "[ERROR]"},
		{"Warn-Below-Error", logger.LogLevelError, func(l logger.Logger) func(string, *logger.LogContext) { return l.Warn }, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := logger.New(logger.WithLogger(newTestLogger(b)), logger.WithLevel(tc.level))

			// Act
			tc.fn(l)("such fun!", nil)

			// Assert
			if tc.expect == "" {
				require.Zero(t, b.Len())
				return
			}

			out := stripColor(b.String())
			require.Equal(t, tc.expect, logLevelRegexp.FindString(out))
			require.Regexp(t, fpRegexp, out)
			require.Equal(t, "such fun!", msgRegexp.FindStringSubmatch(out)[1])
		})
	}

	t.Run("With-Context", func(t *testing.T) {
		b := new(bytes.Buffer)
		l := logger.New(logger.WithLogger(newTestLogger(b)))

		l.Error("oops", &logger.LogContext{Error: errors.New("broke"), Format: "json"})

		require.Contains(t, b.String(), `log_context: {"error":"broke","format":"json"}`)
	})

	t.Run("With-Caller", func(t *testing.T) {
		b := new(bytes.Buffer)
		l := logger.New(logger.WithLogger(newTestLogger(b)))

		l.Info("moved", &logger.LogContext{Caller: "somewhere/else.go:12"})

		require.Contains(t, b.String(), "somewhere/else.go:12")
	})

	t.Run("Skip", func(t *testing.T) {
		l := logger.New(logger.WithSkip(2))
		sl, ok := l.(logger.SkipLogger)
		require.True(t, ok)
		require.Equal(t, 2, sl.Skip())
		require.Equal(t, 5, sl.AddSkip(5).Skip())
		require.Equal(t, 2, sl.Skip())
	})
}

var colorRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripColor(s string) string { return colorRegexp.ReplaceAllString(s, "") }
