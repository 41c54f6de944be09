package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/version"
)

// A ValidationError describes a setting that is not valid.
type ValidationError struct {
	Field string
	Got   any
	Rule  string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: got %v, want %s", ve.Field, ve.Got, ve.Rule)
}

// ValidationErrors collects every setting that is not valid.
type ValidationErrors []ValidationError

func (ves ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ves))
	for _, ve := range ves {
		msgs = append(msgs, ve.Error())
	}

	return fmt.Sprintf("%s: %s", rest.ErrNotValid, strings.Join(msgs, "; "))
}

func (ValidationErrors) Unwrap() error { return rest.ErrNotValid }

var validate = newValidator()

// newValidator constructs a *v10.Validate naming fields by their yaml tag.
func newValidator() *v10.Validate {
	v := v10.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Validate checks every setting of c, returning ValidationErrors describing each one that is not valid.
func (c *Config) Validate() error {
	var errs ValidationErrors
	if err := validate.Struct(c); err != nil {
		var verrs v10.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", rest.ErrNotValid, err)
		}

		for _, ve := range verrs {
			field := ve.Namespace()
			if ns := strings.SplitN(field, ".", 2); len(ns) == 2 {
				field = ns[1]
			}

			rule := ve.Tag()
			if ve.Param() != "" {
				rule += "=" + ve.Param()
			}

			errs = append(errs, ValidationError{Field: field, Got: ve.Value(), Rule: rule})
		}
	}

	errs = append(errs, c.validateSemantics()...)
	if len(errs) > 0 {
		return errs
	}

	return nil
}

// validateSemantics checks what struct tags cannot express.
func (c *Config) validateSemantics() ValidationErrors {
	var errs ValidationErrors
	if err := c.Env.Valid(); err != nil {
		errs = append(errs, ValidationError{Field: "env", Got: c.Env, Rule: "oneof=DEVELOPMENT PRODUCTION STAGING TESTING"})
	}

	for i, s := range c.Versioning.Strategies {
		if (s.Type == version.Header || s.Type == version.Query) && s.Key == "" {
			errs = append(errs, ValidationError{
				Field: fmt.Sprintf("versioning.strategies[%d].key", i),
				Got:   s.Key,
				Rule:  "required for " + string(s.Type),
			})
		}
	}

	for i, r := range c.Rules {
		if r.Path == "" {
			continue
		}

		if _, err := regexp.Compile(r.Path); err != nil {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("rules[%d].path", i), Got: r.Path, Rule: "regexp"})
		}
	}

	errs = append(errs, c.validateClasses()...)

	if reg, err := c.Registry(); err == nil {
		if _, ok := reg.Get(c.Exception.DefaultFormat); !ok {
			errs = append(errs, ValidationError{Field: "exception.default_format", Got: c.Exception.DefaultFormat, Rule: "registered format"})
		}
	}

	for i, e := range c.Exception.Codes {
		if e.Value < 100 || e.Value > 599 {
			errs = append(errs, ValidationError{
				Field: fmt.Sprintf("exception.codes[%d].value", i),
				Got:   e.Value,
				Rule:  "HTTP status code",
			})
		}
	}

	return errs
}

// validateClasses checks the class hierarchy builds
// and every class of the codes and messages tables is declared.
func (c *Config) validateClasses() ValidationErrors {
	h, err := c.Hierarchy()
	if err != nil {
		return ValidationErrors{{Field: "exception.classes", Got: err, Rule: "known parent class"}}
	}

	var errs ValidationErrors
	for i, e := range c.Exception.Codes {
		if !h.Knows(e.Class) {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("exception.codes[%d].class", i), Got: e.Class, Rule: "known class"})
		}
	}

	for i, e := range c.Exception.Messages {
		if !h.Knows(e.Class) {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("exception.messages[%d].class", i), Got: e.Class, Rule: "known class"})
		}
	}

	return errs
}
