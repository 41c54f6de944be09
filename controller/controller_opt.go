package controller

import (
	"github.com/xy-planning-network/rest/exception"
	"github.com/xy-planning-network/rest/http/template"
	"github.com/xy-planning-network/rest/logger"
	"github.com/xy-planning-network/rest/negotiation"
	"github.com/xy-planning-network/rest/view"
)

// A ControllerOptFn applies functional options to an *ExceptionController when constructing it.
type ControllerOptFn func(*ExceptionController)

// WithCodes sets the table of status codes errors are reported with.
func WithCodes(codes *exception.ValueMap[int]) ControllerOptFn {
	return func(c *ExceptionController) {
		if codes != nil {
			c.codes = codes
		}
	}
}

// WithDebug shows every error's message and renders debug templates.
func WithDebug(debug bool) ControllerOptFn {
	return func(c *ExceptionController) {
		c.debug = debug
	}
}

// WithDefaultFormat sets the format errors are reported in
// when negotiation stops and the request declares no format.
// An empty name reports those errors as a plain text 406.
func WithDefaultFormat(name string) ControllerOptFn {
	return func(c *ExceptionController) {
		c.defaultFormat = name
	}
}

// WithEngine sets the template.Engine consulted for which templates exist.
// Unless WithViewHandler is used, it renders templates as well.
func WithEngine(e template.Engine) ControllerOptFn {
	return func(c *ExceptionController) {
		c.engine = e
	}
}

// WithLogger sets the logger.Logger.
func WithLogger(l logger.Logger) ControllerOptFn {
	return func(c *ExceptionController) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMessages sets the table of classes whose messages can be shown to clients.
func WithMessages(messages *exception.ValueMap[bool]) ControllerOptFn {
	return func(c *ExceptionController) {
		if messages != nil {
			c.messages = messages
		}
	}
}

// WithNegotiator sets the *negotiation.Negotiator choosing the format errors are reported in.
func WithNegotiator(n *negotiation.Negotiator) ControllerOptFn {
	return func(c *ExceptionController) {
		if n != nil {
			c.negotiator = n
		}
	}
}

// WithPathPattern sets how template References turn into paths.
func WithPathPattern(pp *template.PathPattern) ControllerOptFn {
	return func(c *ExceptionController) {
		if pp != nil {
			c.pattern = pp
		}
	}
}

// WithViewHandler sets the view.Handler rendering responses.
func WithViewHandler(h view.Handler) ControllerOptFn {
	return func(c *ExceptionController) {
		if h != nil {
			c.views = h
		}
	}
}

// WithWrapperHandler sets the exception.WrapperHandler shaping responses in data formats.
func WithWrapperHandler(wh exception.WrapperHandler) ControllerOptFn {
	return func(c *ExceptionController) {
		if wh != nil {
			c.wrapper = wh
		}
	}
}
