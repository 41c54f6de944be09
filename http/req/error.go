package req

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/exception"
)

// A ValidationError is an issue with a concrete value not matching the rule set on its field.
type ValidationError struct {
	Field string `json:"field" yaml:"field" xml:"field"`
	Got   any    `json:"got" yaml:"got" xml:"got,omitempty"`
	Rule  string `json:"rule,omitempty" yaml:"rule,omitempty" xml:"rule,omitempty"`
}

// ValidationErrors is a set of ValidationError.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msg := fmt.Sprintf("field=%q rule=%q got=%q", err.Field, err.Rule, fmt.Sprint(err.Got))
		msgs = append(msgs, msg)
	}

	return strings.Join(msgs, "\n")
}

func (ValidationErrors) Class() string { return exception.UnprocessableEntityClass }

// Errors returns the list of ValidationError for exception wrappers to report.
func (v ValidationErrors) Errors() any {
	if len(v) == 0 {
		return nil
	}

	return []ValidationError(v)
}

func (ValidationErrors) StatusCode() int { return http.StatusUnprocessableEntity }

func (ValidationErrors) Unwrap() error { return rest.ErrNotValid }

// badFormat reports a payload that could not be decoded.
func badFormat(kind string, err error) error {
	return exception.NewHTTP(
		http.StatusBadRequest,
		"malformed "+kind,
		exception.WithCause(fmt.Errorf("%w: %s", rest.ErrBadFormat, err)),
	)
}
