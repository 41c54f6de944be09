package template_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/http/template"
)

func TestPathPattern(t *testing.T) {
	ref := template.Reference{Bundle: "TwigBundle", Controller: "Exception", Name: "error404", Format: "html"}

	tcs := []struct {
		name     string
		pattern  string
		ref      template.Reference
		expected string
	}{
		{"Default", "", ref, "TwigBundle/Exception/error404.html.tmpl"},
		{"Engine", "", template.Reference{Bundle: "B", Controller: "C", Name: "n", Format: "txt", Engine: "gotmpl"}, "B/C/n.txt.gotmpl"},
		{"Custom", "views/{controller}/{name}-{format}.html", ref, "views/Exception/error404-html.html"},
		{"Unknown-Placeholder", "{theme}/{name}.{format}", ref, "/error404.html"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			pp, err := template.NewPathPattern(tc.pattern)
			require.NoError(t, err)

			// Act
			actual := pp.Path(tc.ref)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestNewPathPatternBad(t *testing.T) {
	// Act
	pp, err := template.NewPathPattern("{bundle}/{name")

	// Assert
	require.ErrorIs(t, err, rest.ErrBadConfig)
	require.Nil(t, pp)
}
