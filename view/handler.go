package view

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/http/template"
	"github.com/xy-planning-network/rest/logger"
	"github.com/xy-planning-network/rest/negotiation"
)

// ViewHandler implements Handler,
// rendering templating formats with a template.Engine
// and serializing every other format with its Encoder.
type ViewHandler struct {
	engine   template.Engine
	encoders map[string]Encoder
	logger   logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	registry *negotiation.Registry
}

// NewHandler constructs a *ViewHandler using the HandlerOptFns passed in.
//
// By default, formats are those of negotiation.DefaultRegistry
// serialized with DefaultEncoders, and no template.Engine is set.
func NewHandler(opts ...HandlerOptFn) *ViewHandler {
	h := &ViewHandler{
		encoders: DefaultEncoders(),
		logger:   logger.New(),
		pool:     &sync.Pool{New: func() any { return new(bytes.Buffer) }},
		registry: negotiation.DefaultRegistry(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// IsFormatTemplating asserts whether format is registered as a templating format.
func (h *ViewHandler) IsFormatTemplating(format string) bool {
	f, ok := h.registry.Lookup(format)
	return ok && f.Templating
}

// Handle renders v.
//
// Templating formats render v.Template with v.Data.
// Other formats serialize v.Data with the Encoder registered for the format.
// The Content-Type header is set from the media type negotiated for r,
// when it belongs to the format, or else from the format's default media type.
func (h *ViewHandler) Handle(v View, r *http.Request) (*Response, error) {
	if v.Format.IsZero() {
		return nil, fmt.Errorf("%w: view has no format", ErrNoFormat)
	}

	b := h.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer h.pool.Put(b)

	if v.Format.Templating || h.IsFormatTemplating(v.Format.Name) {
		if err := h.render(b, v); err != nil {
			return nil, err
		}
	} else if err := h.encode(b, v); err != nil {
		return nil, err
	}

	code := v.StatusCode
	if code == 0 {
		code = http.StatusOK
	}

	headers := v.Headers.Clone()
	if headers == nil {
		headers = make(http.Header)
	}

	if headers.Get("Content-Type") == "" {
		headers.Set("Content-Type", h.contentType(v.Format, r))
	}

	body := make([]byte, b.Len())
	copy(body, b.Bytes())

	return &Response{StatusCode: code, Headers: headers, Body: body}, nil
}

func (h *ViewHandler) render(b *bytes.Buffer, v View) error {
	if h.engine == nil {
		return fmt.Errorf("%w: no template engine for format %q", rest.ErrBadConfig, v.Format)
	}

	if v.Template == "" {
		return fmt.Errorf("%w: for format %q", ErrNoTemplate, v.Format)
	}

	out, err := h.engine.Render(v.Template, v.Data)
	if err != nil {
		return err
	}

	b.Write(out)
	return nil
}

func (h *ViewHandler) encode(b *bytes.Buffer, v View) error {
	enc, ok := h.encoders[v.Format.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoEncoder, v.Format)
	}

	if err := enc.Encode(b, v.Data); err != nil {
		return fmt.Errorf("encoding %s: %w", v.Format, err)
	}

	return nil
}

// contentType returns the Content-Type header value for a response in f.
func (h *ViewHandler) contentType(f negotiation.Format, r *http.Request) string {
	mt, _ := h.registry.MediaTypeOf(f.Name)

	if r != nil {
		negotiated := rest.AttributesFromContext(r.Context()).String(rest.MediaTypeAttr)
		if nf, ok := h.registry.FormatOf(negotiated); ok && nf.Name == f.Name {
			mt, _, _ = strings.Cut(negotiated, ";")
			mt = strings.ToLower(strings.TrimSpace(mt))
		}
	}

	if mt == "" {
		mt = "application/octet-stream"
	}

	if strings.HasPrefix(mt, "text/") || strings.HasSuffix(mt, "json") || strings.HasSuffix(mt, "xml") || strings.HasSuffix(mt, "yaml") {
		return mt + "; charset=UTF-8"
	}

	return mt
}
