package view

//go:generate mockgen -destination=mock_view/mock_view.go -package=mock_view . Handler

import (
	"net/http"

	"github.com/xy-planning-network/rest/negotiation"
)

// A View is data to be rendered as a response.
type View struct {
	Data       any
	StatusCode int
	Headers    http.Header
	Format     negotiation.Format

	// Template names the template rendering Data when Format is a templating format.
	Template string
}

// New constructs a View of data with status code.
// A code of 0 is http.StatusOK.
func New(data any, code int, headers http.Header) View {
	if code == 0 {
		code = http.StatusOK
	}

	if headers == nil {
		headers = make(http.Header)
	}

	return View{Data: data, StatusCode: code, Headers: headers}
}

// A Response is a rendered View.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Write writes the Response to w.
func (resp *Response) Write(w http.ResponseWriter) error {
	h := w.Header()
	for k, vals := range resp.Headers {
		h[k] = append([]string(nil), vals...)
	}

	code := resp.StatusCode
	if code == 0 {
		code = http.StatusOK
	}

	w.WriteHeader(code)
	if len(resp.Body) == 0 {
		return nil
	}

	_, err := w.Write(resp.Body)
	return err
}

// A Handler renders Views.
type Handler interface {
	// IsFormatTemplating asserts whether format is rendered through templates.
	IsFormatTemplating(format string) bool

	// Handle renders v in response to r.
	Handle(v View, r *http.Request) (*Response, error)
}
