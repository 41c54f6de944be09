package view

import (
	"strings"

	"github.com/xy-planning-network/rest/http/template"
	"github.com/xy-planning-network/rest/logger"
	"github.com/xy-planning-network/rest/negotiation"
)

// A HandlerOptFn applies functional options to a *ViewHandler when constructing it.
type HandlerOptFn func(*ViewHandler)

// WithEncoder registers enc for the format named format.
func WithEncoder(format string, enc Encoder) HandlerOptFn {
	return func(h *ViewHandler) {
		if enc == nil {
			return
		}
		h.encoders[strings.ToLower(format)] = enc
	}
}

// WithEngine sets the template.Engine rendering templating formats.
func WithEngine(e template.Engine) HandlerOptFn {
	return func(h *ViewHandler) {
		h.engine = e
	}
}

// WithLogger sets the logger.Logger.
func WithLogger(l logger.Logger) HandlerOptFn {
	return func(h *ViewHandler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithRegistry sets the formats known to the *ViewHandler.
func WithRegistry(reg *negotiation.Registry) HandlerOptFn {
	return func(h *ViewHandler) {
		if reg != nil {
			h.registry = reg
		}
	}
}
