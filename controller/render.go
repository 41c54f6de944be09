package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/http/template"
	"github.com/xy-planning-network/rest/negotiation"
	"github.com/xy-planning-network/rest/view"
)

// render renders params, recovering from panics of the collaborators it calls.
//
// Data formats serialize params wrapped by the exception.WrapperHandler.
// Templating formats render params with the template found by findTemplate.
func (c *ExceptionController) render(r *http.Request, params Parameters, code int, headers http.Header, format negotiation.Format) (resp *view.Response, err error) {
	defer func() {
		if p := recover(); p != nil {
			resp, err = nil, fmt.Errorf("%w: %v", ErrRenderPanic, p)
		}
	}()

	templating := c.views.IsFormatTemplating(format.Name)

	var data any = params
	if !templating {
		data = c.wrapper.Wrap(params)
	}

	v := view.New(data, code, headers.Clone())
	v.Format = format

	if templating {
		var tmplFormat string
		v.Template, tmplFormat = c.findTemplate(format.Name, code)
		if tmplFormat != format.Name {
			v.Format, _ = c.negotiator.Registry().Lookup(tmplFormat)
			rest.AttributesFromContext(r.Context()).Set(rest.FormatAttr, tmplFormat)
		}
	}

	return c.views.Handle(v, r)
}

// findTemplate returns the path of the template rendering an error reported with code in format,
// and the format that template produces.
//
// Outside of debug mode, the candidates are, in order:
//
//	TwigBundle/Exception/error404.json.tmpl
//	TwigBundle/Exception/error.json.tmpl
//	TwigBundle/Exception/error.html.tmpl
//
// In debug mode, exception replaces error, exception_full is used for html,
// and no status specific template is looked for.
// The last candidate is used whether it exists or not.
func (c *ExceptionController) findTemplate(format string, code int) (string, string) {
	name := "error"
	if c.debug {
		name = "exception"
		if format == "html" {
			name = "exception_full"
		}
	}

	ref := template.Reference{
		Bundle:     template.DefaultBundle,
		Controller: template.DefaultController,
		Format:     format,
	}

	if !c.debug {
		ref.Name = name + strconv.Itoa(code)
		if p := c.pattern.Path(ref); c.exists(p) {
			return p, format
		}
	}

	ref.Name = name
	if p := c.pattern.Path(ref); c.exists(p) {
		return p, format
	}

	ref.Format = "html"
	ref.Name = name
	if c.debug {
		ref.Name = "exception_full"
	}

	return c.pattern.Path(ref), "html"
}

func (c *ExceptionController) exists(path string) bool {
	return c.engine != nil && c.engine.Exists(path)
}
