package negotiation

import (
	"fmt"
	"path"
	"strings"

	"github.com/xy-planning-network/rest/version"
)

// A Format is the canonical name of a response representation
// and whether it is rendered through templates.
type Format struct {
	Name       string
	Templating bool
}

func (f Format) String() string { return f.Name }

// IsZero asserts whether f names no format.
func (f Format) IsZero() bool { return f.Name == "" }

// A Definition describes a Format the service can produce.
type Definition struct {
	// Name is the canonical format name, e.g., "json".
	Name string

	// MediaTypes the format is served as; the first is the default.
	MediaTypes []string

	// Templating marks formats rendered through templates.
	Templating bool

	// Versions restricts the Definition to requests for these API versions.
	// An empty Versions accepts any version, including none.
	Versions []string
}

// Format returns the Format described by d.
func (d Definition) Format() Format { return Format{Name: d.Name, Templating: d.Templating} }

// Admits asserts whether the Definition accepts requests for v.
func (d Definition) Admits(v version.Version) bool {
	if len(d.Versions) == 0 {
		return true
	}

	if !v.IsSet() {
		return false
	}

	for _, allowed := range d.Versions {
		if allowed == v.String() {
			return true
		}
	}

	return false
}

// A Registry holds the Definitions known to the service, in registration order.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// NewRegistry constructs a *Registry from the definitions.
// A later Definition with the same Name replaces an earlier one.
func NewRegistry(defs ...Definition) (*Registry, error) {
	reg := &Registry{index: make(map[string]int)}
	for _, d := range defs {
		if err := reg.Add(d); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// DefaultRegistry constructs a *Registry with the common web formats.
// Only html is a templating format.
func DefaultRegistry() *Registry {
	reg, _ := NewRegistry(
		Definition{Name: "html", MediaTypes: []string{"text/html", "application/xhtml+xml"}, Templating: true},
		Definition{Name: "json", MediaTypes: []string{"application/json", "application/x-json"}},
		Definition{Name: "xml", MediaTypes: []string{"text/xml", "application/xml", "application/x-xml"}},
		Definition{Name: "yaml", MediaTypes: []string{"application/x-yaml", "application/yaml", "text/yaml"}},
		Definition{Name: "txt", MediaTypes: []string{"text/plain"}},
	)

	return reg
}

// Add registers d.
func (reg *Registry) Add(d Definition) error {
	d.Name = strings.ToLower(strings.TrimSpace(d.Name))
	if d.Name == "" {
		return fmt.Errorf("%w: format definition has no name", ErrUnknownFormat)
	}

	if len(d.MediaTypes) == 0 {
		return fmt.Errorf("%w: format %q has no media types", ErrUnknownFormat, d.Name)
	}

	mts := make([]string, len(d.MediaTypes))
	for i, mt := range d.MediaTypes {
		typ, sub, ok := splitMediaType(mt)
		if !ok {
			return fmt.Errorf("%w: format %q has malformed media type %q", ErrUnknownFormat, d.Name, mt)
		}
		mts[i] = typ + "/" + sub
	}
	d.MediaTypes = mts

	if i, ok := reg.index[d.Name]; ok {
		reg.defs[i] = d
		return nil
	}

	reg.index[d.Name] = len(reg.defs)
	reg.defs = append(reg.defs, d)
	return nil
}

// Definitions returns the registered Definitions in registration order.
func (reg *Registry) Definitions() []Definition {
	out := make([]Definition, len(reg.defs))
	copy(out, reg.defs)
	return out
}

// Get returns the Definition registered under name.
func (reg *Registry) Get(name string) (Definition, bool) {
	if reg == nil {
		return Definition{}, false
	}

	i, ok := reg.index[strings.ToLower(name)]
	if !ok {
		return Definition{}, false
	}

	return reg.defs[i], true
}

// Names returns the names of the registered Definitions in registration order.
func (reg *Registry) Names() []string {
	names := make([]string, len(reg.defs))
	for i, d := range reg.defs {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the Format for name.
func (reg *Registry) Lookup(name string) (Format, bool) {
	d, ok := reg.Get(name)
	if !ok {
		return Format{}, false
	}
	return d.Format(), true
}

// FormatOf returns the Format serving mediaType.
func (reg *Registry) FormatOf(mediaType string) (Format, bool) {
	typ, sub, ok := splitMediaType(mediaType)
	if !ok || reg == nil {
		return Format{}, false
	}

	mt := typ + "/" + sub
	for _, d := range reg.defs {
		for _, candidate := range d.MediaTypes {
			if candidate == mt {
				return d.Format(), true
			}
		}
	}

	return Format{}, false
}

// MediaTypeOf returns the default media type of the format named name.
func (reg *Registry) MediaTypeOf(name string) (string, bool) {
	d, ok := reg.Get(name)
	if !ok {
		return "", false
	}
	return d.MediaTypes[0], true
}

// Extension returns the Format named by the extension of the URL path p,
// e.g., /users/1.json is json.
func (reg *Registry) Extension(p string) (Format, bool) {
	ext := path.Ext(p)
	if len(ext) < 2 {
		return Format{}, false
	}
	return reg.Lookup(ext[1:])
}
