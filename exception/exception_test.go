package exception_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/exception"
)

func TestException(t *testing.T) {
	// Arrange
	cause := errors.New("row missing")

	// Act
	e := exception.New("FooException", "no foo",
		exception.WithStatus(http.StatusNotFound),
		exception.WithHeader("X-Foo", "bar"),
		exception.WithCause(cause),
	)

	// Assert
	require.Equal(t, "FooException", e.Class())
	require.Equal(t, "no foo", e.Message())
	require.Equal(t, "no foo: row missing", e.Error())
	require.Equal(t, http.StatusNotFound, e.StatusCode())
	require.Equal(t, "bar", e.Headers().Get("X-Foo"))
	require.ErrorIs(t, e, cause)

	e.Headers().Set("X-Foo", "baz")
	require.Equal(t, "bar", e.Headers().Get("X-Foo"))
}

func TestNewHTTP(t *testing.T) {
	tcs := []struct {
		name  string
		code  int
		class string
	}{
		{"Not-Found", http.StatusNotFound, exception.NotFoundClass},
		{"Too-Many-Requests", http.StatusTooManyRequests, exception.TooManyRequestsClass},
		{"Other", http.StatusTeapot, exception.HTTPExceptionClass},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			e := exception.NewHTTP(tc.code, "msg")

			// Assert
			require.Equal(t, tc.class, e.Class())
			code, ok := exception.StatusOf(e)
			require.True(t, ok)
			require.Equal(t, tc.code, code)
		})
	}
}

func TestOf(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", exception.New("FooException", "no foo", exception.WithStatus(http.StatusGone), exception.WithHeader("Retry-After", "10")))

	tcs := []struct {
		name    string
		err     error
		class   string
		message string
		status  int
		ok      bool
		headers http.Header
	}{
		{"Nil", nil, "", "", 0, false, http.Header{}},
		{"Plain", errors.New("boom"), "*errors.errorString", "boom", 0, false, http.Header{}},
		{"Wrapped", wrapped, "FooException", "no foo", http.StatusGone, true, http.Header{"Retry-After": {"10"}}},
		{"Bad-Status", exception.New("", "bad", exception.WithStatus(42)), exception.RootClass, "bad", 0, false, http.Header{}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			status, ok := exception.StatusOf(tc.err)

			// Assert
			require.Equal(t, tc.class, exception.ClassOf(tc.err))
			require.Equal(t, tc.message, exception.MessageOf(tc.err))
			require.Equal(t, tc.status, status)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.headers, exception.HeadersOf(tc.err))
		})
	}
}

func TestHierarchy(t *testing.T) {
	// Arrange
	h := exception.NewHierarchy()

	// Act + Assert
	require.NoError(t, h.Extend("FooException", exception.RootClass))
	require.NoError(t, h.Extend("BarException", "FooException"))
	require.NoError(t, h.Extend("BarException", "FooException"))

	require.ErrorIs(t, h.Extend("BarException", exception.RootClass), rest.ErrBadConfig)
	require.ErrorIs(t, h.Extend("BazException", "QuxException"), exception.ErrUnknownClass)
	require.ErrorIs(t, h.Extend("", exception.RootClass), rest.ErrBadConfig)

	require.True(t, h.Knows("BarException"))
	require.False(t, h.Knows("QuxException"))
	require.Equal(t, []string{"FooException", exception.RootClass}, h.Ancestors("BarException"))
	require.True(t, h.IsA("BarException", "FooException"))
	require.True(t, h.IsA("BarException", "BarException"))
	require.False(t, h.IsA("FooException", "BarException"))
}

func TestHierarchyCanonical(t *testing.T) {
	tcs := []struct {
		name     string
		class    string
		expected string
	}{
		{"Bare", "NotFound", exception.NotFoundClass},
		{"Full", exception.NotFoundClass, exception.NotFoundClass},
		{"Padded", " InvalidArgument ", exception.InvalidArgumentClass},
		{"Declared-Bare", "ReportMissing", "ReportMissing"},
		{"Unknown", "Missing", "Missing"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			h := exception.DefaultHierarchy()
			require.NoError(t, h.Extend("ReportMissing", "NotFound"))

			// Act
			actual := h.Canonical(tc.class)

			// Assert
			require.Equal(t, tc.expected, actual)
			require.True(t, h.IsA("ReportMissing", exception.NotFoundClass))
			require.True(t, h.IsA("ReportMissing", "HTTP"))
			require.Equal(t, tc.expected != "Missing", h.Knows(tc.class))
		})
	}
}

func TestDefaultHierarchy(t *testing.T) {
	// Arrange
	h := exception.DefaultHierarchy()

	// Act + Assert
	require.True(t, h.IsA(exception.NotFoundClass, exception.HTTPExceptionClass))
	require.True(t, h.IsA(exception.NotFoundClass, exception.RootClass))
	require.True(t, h.IsA(exception.UnexpectedValueClass, exception.RuntimeClass))
	require.False(t, h.IsA(exception.InvalidArgumentClass, exception.RuntimeClass))
}

type fieldErrors []string

func (f fieldErrors) Error() string { return "fields: " + fmt.Sprint([]string(f)) }
func (f fieldErrors) Errors() any { return []string(f) }

func TestErrorsOf(t *testing.T) {
	tcs := []struct {
		name     string
		err      error
		expected any
	}{
		{"Nil", nil, nil},
		{"Plain", errors.New("boom"), nil},
		{"Carrier", fieldErrors{"title"}, []string{"title"}},
		{"Wrapped-Carrier", exception.New("", "bad", exception.WithCause(fieldErrors{"a", "b"})), []string{"a", "b"}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual := exception.ErrorsOf(tc.err)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}
