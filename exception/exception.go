package exception

import (
	"errors"
	"fmt"
	"net/http"
)

// A Classed error names its class.
type Classed interface {
	error
	Class() string
}

// A StatusCoder error declares the HTTP status code it ought to be reported with.
type StatusCoder interface {
	error
	StatusCode() int
}

// A HeaderCarrier error declares HTTP headers to set on the response reporting it.
type HeaderCarrier interface {
	error
	Headers() http.Header
}

// An ErrorsCarrier error lists the individual errors it is made of, e.g., failed validation rules.
type ErrorsCarrier interface {
	error
	Errors() any
}

// An Exception is an error with a class, a message meant for clients,
// and optionally a status code, response headers and an underlying cause.
type Exception struct {
	class   string
	message string
	status  int
	headers http.Header
	err     error
}

// An Option configures an *Exception.
type Option func(*Exception)

// WithCause sets err as the cause of the *Exception.
func WithCause(err error) Option {
	return func(e *Exception) {
		e.err = err
	}
}

// WithHeader adds the header to the response reporting the *Exception.
func WithHeader(key, val string) Option {
	return func(e *Exception) {
		if e.headers == nil {
			e.headers = make(http.Header)
		}
		e.headers.Add(key, val)
	}
}

// WithStatus sets the HTTP status code the *Exception declares.
func WithStatus(code int) Option {
	return func(e *Exception) {
		e.status = code
	}
}

// New constructs an *Exception of class with msg.
// An empty class is RootClass.
func New(class, msg string, opts ...Option) *Exception {
	if class == "" {
		class = RootClass
	}

	e := &Exception{class: class, message: msg}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// NewHTTP constructs an *Exception declaring code.
// The class is derived from code, e.g., 404 is NotFoundException.
func NewHTTP(code int, msg string, opts ...Option) *Exception {
	return New(HTTPClass(code), msg, append([]Option{WithStatus(code)}, opts...)...)
}

func (e *Exception) Class() string { return e.class }

func (e *Exception) Error() string {
	switch {
	case e.err == nil:
		return e.message
	case e.message == "":
		return e.err.Error()
	default:
		return fmt.Sprintf("%s: %s", e.message, e.err)
	}
}

// Headers returns a copy of the headers the *Exception declares.
func (e *Exception) Headers() http.Header { return e.headers.Clone() }

// Message returns the message meant for clients.
func (e *Exception) Message() string { return e.message }

func (e *Exception) StatusCode() int { return e.status }

func (e *Exception) Unwrap() error { return e.err }

// ClassOf returns the class of err.
// An err not implementing Classed is classed by its Go type, e.g., "*errors.errorString".
func ClassOf(err error) string {
	if err == nil {
		return ""
	}

	var c Classed
	if errors.As(err, &c) {
		return c.Class()
	}

	return fmt.Sprintf("%T", err)
}

// MessageOf returns the message of err meant for clients.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}

	var e *Exception
	if errors.As(err, &e) && e.message != "" {
		return e.message
	}

	return err.Error()
}

// StatusOf returns the HTTP status code err declares.
// Zero or out of range codes are not declared.
func StatusOf(err error) (int, bool) {
	var sc StatusCoder
	if !errors.As(err, &sc) {
		return 0, false
	}

	code := sc.StatusCode()
	if code < 100 || code > 599 {
		return 0, false
	}

	return code, true
}

// HeadersOf returns the HTTP headers err declares.
// The returned http.Header is never nil and is safe to modify.
func HeadersOf(err error) http.Header {
	var hc HeaderCarrier
	if !errors.As(err, &hc) {
		return make(http.Header)
	}

	h := hc.Headers()
	if h == nil {
		return make(http.Header)
	}

	return h.Clone()
}

// ErrorsOf returns the errors err lists, or nil.
func ErrorsOf(err error) any {
	var ec ErrorsCarrier
	if !errors.As(err, &ec) {
		return nil
	}

	return ec.Errors()
}
