package req_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/exception"
	"github.com/xy-planning-network/rest/http/req"
)

func TestValidationErrorsError(t *testing.T) {
	// Arrange
	var v req.ValidationErrors

	// Act
	actual := v.Error()

	// Assert
	require.Zero(t, actual)

	// Arrange
	v = append(
		v,
		req.ValidationError{
			Field: "first",
			Rule:  "required; string",
		},
		req.ValidationError{
			Field: "second",
			Got:   "big boo boo",
			Rule:  "len=1; string",
		},
	)

	expected := strings.Join([]string{
		`field="first" rule="required; string" got="<nil>"`,
		`field="second" rule="len=1; string" got="big boo boo"`,
	}, "\n")

	// Act
	actual = v.Error()

	// Assert
	require.Equal(t, expected, actual)
}

func TestValidationErrorsException(t *testing.T) {
	// Arrange
	v := req.ValidationErrors{{Field: "title", Got: "", Rule: "required; string"}}

	// Act
	code, ok := exception.StatusOf(v)

	// Assert
	require.ErrorIs(t, v, rest.ErrNotValid)
	require.Equal(t, exception.UnprocessableEntityClass, exception.ClassOf(v))
	require.True(t, ok)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.Equal(t, []req.ValidationError(v), exception.ErrorsOf(v))
	require.Nil(t, exception.ErrorsOf(req.ValidationErrors{}))
}
