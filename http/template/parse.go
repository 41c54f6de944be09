package template

import (
	"bytes"
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"
	"sync"
)

// Parser is the interface for parsing HTML templates with the functions provided.
type Parser interface {
	AddFn(name string, fn any)
	Parse(fps ...string) (*html.Template, error)
}

// Engine is the interface for rendering named templates.
type Engine interface {
	// Exists asserts whether the template named name can be rendered.
	Exists(name string) bool

	// Render executes the template named name with data.
	Render(name string, data any) ([]byte, error)
}

// Parse implements Parser and Engine
// with a focus on utilizing embedded HTML templates through fs.FS.
type Parse struct {
	fs     fs.FS
	fns    html.FuncMap
	reload bool

	mu    sync.RWMutex
	cache map[string]*html.Template
}

// NewParser constructs a *Parse with the provided functional options.
//
// Templates are looked up in the fs.FS set with WithFS, or the working directory,
// before the templates shipped with this package.
func NewParser(opts ...ParserOptFn) *Parse {
	p := &Parse{fns: make(html.FuncMap), cache: make(map[string]*html.Template)}
	for _, opt := range opts {
		opt(p)
	}

	userFS := p.fs
	if userFS == nil {
		userFS = os.DirFS(".")
	}

	p.fs = &mergeFS{
		cache:   make(map[string]func(string) (fs.File, error)),
		userDir: userFS,
		pkgDir:  pkgFS,
	}

	return p
}

// Parse parses files found in the *Parse.fs with those functions provided previously.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 || p.fs == nil {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	p.mu.RLock()
	fns := make(html.FuncMap, len(p.fns))
	for k, v := range p.fns {
		fns[k] = v
	}
	p.mu.RUnlock()

	return html.New(path.Base(files[0])).Funcs(fns).ParseFS(p.fs, files...)
}

// Exists asserts whether a file named name is present in the *Parse.fs.
func (p *Parse) Exists(name string) bool {
	if name == "" || p.fs == nil {
		return false
	}

	info, err := fs.Stat(p.fs, name)
	return err == nil && !info.IsDir()
}

// Render parses the file named name and executes it with data.
//
// Parsed templates are cached unless the *Parse was constructed with WithReload.
func (p *Parse) Render(name string, data any) ([]byte, error) {
	tmpl, err := p.lookup(name)
	if err != nil {
		return nil, err
	}

	b := new(bytes.Buffer)
	if err := tmpl.Execute(b, data); err != nil {
		return nil, fmt.Errorf("%w: executing %s: %s", ErrRender, name, err)
	}

	return b.Bytes(), nil
}

// lookup returns the parsed template named name, parsing and caching it as needed.
func (p *Parse) lookup(name string) (*html.Template, error) {
	if !p.reload {
		p.mu.RLock()
		tmpl, ok := p.cache[name]
		p.mu.RUnlock()
		if ok {
			return tmpl, nil
		}
	}

	tmpl, err := p.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrRender, name, err)
	}

	if !p.reload {
		p.mu.Lock()
		if p.cache == nil {
			p.cache = make(map[string]*html.Template)
		}
		p.cache[name] = tmpl
		p.mu.Unlock()
	}

	return tmpl, nil
}
