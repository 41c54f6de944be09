package template

import (
	"fmt"

	"github.com/valyala/fasttemplate"
	"github.com/xy-planning-network/rest"
)

const (
	DefaultBundle     = "TwigBundle"
	DefaultController = "Exception"
	DefaultEngine     = "tmpl"

	// DefaultPathPattern lays templates out as, e.g., TwigBundle/Exception/error404.html.tmpl.
	DefaultPathPattern = "{bundle}/{controller}/{name}.{format}.{engine}"
)

// A Reference identifies a template independently of where it is stored.
type Reference struct {
	Bundle     string
	Controller string
	Name       string
	Format     string
	Engine     string
}

// A PathPattern turns References into template file paths.
// Placeholders are {bundle}, {controller}, {name}, {format} and {engine};
// any other placeholder is replaced with the empty string.
type PathPattern struct {
	raw string
	t   *fasttemplate.Template
}

// NewPathPattern constructs a *PathPattern from pattern.
// An empty pattern is DefaultPathPattern.
func NewPathPattern(pattern string) (*PathPattern, error) {
	if pattern == "" {
		pattern = DefaultPathPattern
	}

	t, err := fasttemplate.NewTemplate(pattern, "{", "}")
	if err != nil {
		return nil, fmt.Errorf("%w: template path pattern %q: %s", rest.ErrBadConfig, pattern, err)
	}

	return &PathPattern{raw: pattern, t: t}, nil
}

// Path returns the file path of ref.
// An empty Engine in ref is DefaultEngine.
func (pp *PathPattern) Path(ref Reference) string {
	engine := ref.Engine
	if engine == "" {
		engine = DefaultEngine
	}

	return pp.t.ExecuteString(map[string]any{
		"bundle":     ref.Bundle,
		"controller": ref.Controller,
		"name":       ref.Name,
		"format":     ref.Format,
		"engine":     engine,
	})
}

func (pp *PathPattern) String() string { return pp.raw }
