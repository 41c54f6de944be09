package controller

import (
	"net/http"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/buffer"
	"github.com/xy-planning-network/rest/exception"
	"github.com/xy-planning-network/rest/logger"
	"github.com/xy-planning-network/rest/negotiation"
)

// Keys of Parameters.
const (
	StatusKey         = "status"
	StatusCodeKey     = "status_code"
	StatusTextKey     = "status_text"
	CurrentContentKey = "currentContent"
	MessageKey        = "message"
	ExceptionKey      = "exception"
	ErrorsKey         = exception.ErrorsKey
	LoggerKey         = "logger"
)

// Parameters describe an error to the view rendering it.
type Parameters map[string]any

// BuildParameters collects the Parameters describing err for a response to r in format,
// returning them and the status code err is reported with.
//
// Output buffered for r since it began is drained into the currentContent parameter.
// The errors parameter is only present when err lists errors.
// The logger parameter is only present for templating formats.
func (c *ExceptionController) BuildParameters(r *http.Request, err error, format negotiation.Format) (Parameters, int) {
	code := c.StatusCode(err)
	return c.parameters(err, code, c.Message(err), format, c.drain(r)), code
}

func (c *ExceptionController) parameters(err error, code int, msg string, format negotiation.Format, content []byte) Parameters {
	params := Parameters{
		StatusKey:         "error",
		StatusCodeKey:     code,
		StatusTextKey:     statusText(code),
		CurrentContentKey: string(content),
		MessageKey:        msg,
		ExceptionKey:      exception.Flatten(err, code),
	}

	if errs := exception.ErrorsOf(err); errs != nil {
		params[ErrorsKey] = errs
	}

	if c.views.IsFormatTemplating(format.Name) {
		params[LoggerKey] = c.logger
	}

	return params
}

// StatusCode returns the status code err is reported with:
// the one mapped to its class, else the one it declares, else 500.
func (c *ExceptionController) StatusCode(err error) int {
	res := c.codes.Resolve(err)
	c.note(res.Note, err)
	if res.Mapped {
		return res.Value
	}

	if code, ok := exception.StatusOf(err); ok {
		return code
	}

	return http.StatusInternalServerError
}

// Message returns the message describing err to clients.
//
// The message of err is shown when its class is mapped to true or in debug mode.
// Otherwise, the text of the status code err declares stands in for it.
func (c *ExceptionController) Message(err error) string {
	res := c.messages.Resolve(err)
	c.note(res.Note, err)
	if (res.Mapped && res.Value) || c.debug {
		return exception.MessageOf(err)
	}

	code, ok := exception.StatusOf(err)
	if !ok {
		code = http.StatusInternalServerError
	}

	return statusText(code)
}

// drain returns the output buffered for r since it began, discarding it from the response.
func (c *ExceptionController) drain(r *http.Request) []byte {
	s, ok := buffer.FromContext(r.Context())
	if !ok {
		return nil
	}

	start, _ := rest.AttributesFromContext(r.Context()).Int(rest.BufferLevelAttr)
	return buffer.Drain(s, start)
}

// note logs why err could not be classified.
func (c *ExceptionController) note(note string, err error) {
	if note == "" {
		return
	}

	c.logger.Debug(note, &logger.LogContext{Error: err})
}

// statusText returns the text of code, or "error" for unknown codes.
func statusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "error"
}
