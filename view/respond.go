package view

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/logger"
	"github.com/xy-planning-network/rest/negotiation"
)

// A Fn sets up a View before Respond renders it.
type Fn func(*View)

// Code sets the status code of the response.
func Code(code int) Fn {
	return func(v *View) {
		v.StatusCode = code
	}
}

// Header adds the header to the response.
func Header(key, val string) Fn {
	return func(v *View) {
		v.Headers.Add(key, val)
	}
}

// Template names the template rendering a templating format.
func Template(name string) Fn {
	return func(v *View) {
		v.Template = name
	}
}

// Respond renders data in the format negotiated for r and writes the result to w.
//
// The format is read from the _format attribute of r.
// Errors are returned, rather than written to w,
// so callers can hand them to whatever reports errors to clients.
func (h *ViewHandler) Respond(w http.ResponseWriter, r *http.Request, data any, opts ...Fn) error {
	name := rest.AttributesFromContext(r.Context()).String(rest.FormatAttr)
	f, ok := h.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %w: %q", ErrNoFormat, negotiation.ErrNotAcceptable, name)
	}

	v := New(data, http.StatusOK, nil)
	v.Format = f
	for _, opt := range opts {
		opt(&v)
	}

	resp, err := h.Handle(v, r)
	if err != nil {
		return err
	}

	if err := resp.Write(w); err != nil {
		h.logger.Error("could not write response", &logger.LogContext{Request: r, Error: err, Format: f.Name})
		return err
	}

	return nil
}
