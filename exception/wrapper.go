package exception

//go:generate mockgen -destination=mock_exception/mock_exception.go -package=mock_exception . WrapperHandler

import "encoding/xml"

// Keys read from the data wrapped by DefaultWrapperHandler.
const (
	CodeKey    = "status_code"
	MessageKey = "message"
	ErrorsKey  = "errors"
)

// A Wrapper is the envelope exceptions are serialized in for data formats.
type Wrapper struct {
	XMLName xml.Name `json:"-" yaml:"-" xml:"result"`
	Code    int      `json:"code" yaml:"code" xml:"code"`
	Message string   `json:"message" yaml:"message" xml:"message"`
	Errors  any      `json:"errors,omitempty" yaml:"errors,omitempty" xml:"errors,omitempty"`
}

// A WrapperHandler shapes the data describing an exception for serialization.
type WrapperHandler interface {
	Wrap(data map[string]any) any
}

// WrapperHandlerFunc adapts a function to a WrapperHandler.
type WrapperHandlerFunc func(data map[string]any) any

func (fn WrapperHandlerFunc) Wrap(data map[string]any) any { return fn(data) }

// DefaultWrapperHandler wraps data in a *Wrapper.
type DefaultWrapperHandler struct{}

// Wrap constructs a *Wrapper from the CodeKey, MessageKey and ErrorsKey values of data.
// Missing or mistyped values are left zero.
func (DefaultWrapperHandler) Wrap(data map[string]any) any {
	w := new(Wrapper)
	w.Code, _ = data[CodeKey].(int)
	w.Message, _ = data[MessageKey].(string)
	w.Errors = data[ErrorsKey]
	return w
}
