package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeEngine map[string]bool

func (e fakeEngine) Exists(name string) bool { return e[name] }

func (e fakeEngine) Render(string, any) ([]byte, error) { return nil, errors.New("not rendering") }

func TestFindTemplate(t *testing.T) {
	tcs := []struct {
		name     string
		debug    bool
		exists   []string
		format   string
		code     int
		path     string
		produces string
	}{
		{"Status-Specific", false, []string{"TwigBundle/Exception/error404.json.tmpl"}, "json", 404, "TwigBundle/Exception/error404.json.tmpl", "json"},
		{"Generic", false, []string{"TwigBundle/Exception/error.json.tmpl"}, "json", 404, "TwigBundle/Exception/error.json.tmpl", "json"},
		{"Default-HTML", false, nil, "json", 404, "TwigBundle/Exception/error.html.tmpl", "html"},
		{"HTML-Status-Specific", false, []string{"TwigBundle/Exception/error500.html.tmpl"}, "html", 500, "TwigBundle/Exception/error500.html.tmpl", "html"},
		{"Debug-Skips-Status", true, []string{"TwigBundle/Exception/exception404.json.tmpl", "TwigBundle/Exception/exception.json.tmpl"}, "json", 404, "TwigBundle/Exception/exception.json.tmpl", "json"},
		{"Debug-Default", true, nil, "json", 404, "TwigBundle/Exception/exception_full.html.tmpl", "html"},
		{"Debug-HTML", true, []string{"TwigBundle/Exception/exception_full.html.tmpl"}, "html", 404, "TwigBundle/Exception/exception_full.html.tmpl", "html"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			e := make(fakeEngine)
			for _, p := range tc.exists {
				e[p] = true
			}
			c := NewExceptionController(WithEngine(e), WithDebug(tc.debug))

			// Act
			path, produces := c.findTemplate(tc.format, tc.code)

			// Assert
			require.Equal(t, tc.path, path)
			require.Equal(t, tc.produces, produces)
		})
	}
}
