package version

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/xy-planning-network/rest"
)

const (
	// GroupName is the named capture group a media type pattern must define.
	GroupName = "version"

	// DefaultPattern matches versions like application/json;version=1.2 and application/json/v=1.2.
	DefaultPattern = `(v|version)=(?P<version>[0-9\.]+)`

	// matchTimeout bounds a single pattern evaluation.
	matchTimeout = 50 * time.Millisecond
)

// A Strategy names a way of extracting a Version from a request.
type Strategy string

const (
	Disabled  Strategy = "disabled"
	Header    Strategy = "header"
	Query     Strategy = "query"
	MediaType Strategy = "media_type"
)

// Valid asserts whether s is a known Strategy.
func (s Strategy) Valid() error {
	switch s {
	case Disabled, Header, Query, MediaType:
		return nil
	default:
		return fmt.Errorf("%w: unknown version strategy %q", rest.ErrNotValid, s)
	}
}

// A Source produces a Version from a request.
type Source interface {
	Extract(r *http.Request) Version
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(r *http.Request) Version

func (fn SourceFunc) Extract(r *http.Request) Version { return fn(r) }

// An Extractor runs its sources in order, returning the first Version found.
//
// The zero value is disabled and always returns None.
type Extractor struct {
	sources []Source
}

// An Option adds a source to an Extractor under construction.
type Option func(*Extractor) error

// NewExtractor constructs an *Extractor from the options.
// No options disables extraction.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := new(Extractor)
	for _, opt := range opts {
		if err := opt(e); err != nil {
			if errors.Is(err, rest.ErrBadConfig) {
				return nil, err
			}

			return nil, fmt.Errorf("%w: %w", rest.ErrBadConfig, err)
		}
	}

	return e, nil
}

// Extract returns the first Version found by the Extractor's sources
// or None.
func (e *Extractor) Extract(r *http.Request) Version {
	if e == nil || r == nil {
		return None
	}

	for _, src := range e.sources {
		if v := src.Extract(r); v.IsSet() {
			return v
		}
	}

	return None
}

// Enabled asserts whether the Extractor has any sources.
func (e *Extractor) Enabled() bool { return e != nil && len(e.sources) > 0 }

// WithSource adds a custom Source.
func WithSource(src Source) Option {
	return func(e *Extractor) error {
		if src == nil {
			return fmt.Errorf("%w: nil source", rest.ErrMissingData)
		}

		e.sources = append(e.sources, src)
		return nil
	}
}

// WithHeader extracts the version from the header named key.
func WithHeader(key string) Option {
	return func(e *Extractor) error {
		if key == "" {
			return fmt.Errorf("%w: header key", rest.ErrMissingData)
		}

		key = http.CanonicalHeaderKey(key)
		e.sources = append(e.sources, SourceFunc(func(r *http.Request) Version {
			vals, ok := r.Header[key]
			if !ok || len(vals) == 0 {
				return None
			}
			return New(strings.TrimSpace(vals[0]))
		}))

		return nil
	}
}

// WithQuery extracts the version from the query parameter named key.
func WithQuery(key string) Option {
	return func(e *Extractor) error {
		if key == "" {
			return fmt.Errorf("%w: query key", rest.ErrMissingData)
		}

		e.sources = append(e.sources, SourceFunc(func(r *http.Request) Version {
			if r.URL == nil {
				return None
			}

			vals, ok := r.URL.Query()[key]
			if !ok || len(vals) == 0 {
				return None
			}
			return New(vals[0])
		}))

		return nil
	}
}

// WithMediaType extracts the version by applying pattern to the media type of the request.
// The media type is read from the media_type attribute,
// falling back to the raw Accept header when the attribute is not set.
//
// pattern must define a named capture group "version";
// an empty pattern uses DefaultPattern.
func WithMediaType(pattern string) Option {
	return func(e *Extractor) error {
		p, err := CompilePattern(pattern)
		if err != nil {
			return err
		}

		e.sources = append(e.sources, SourceFunc(func(r *http.Request) Version {
			mt := rest.AttributesFromContext(r.Context()).String(rest.MediaTypeAttr)
			if mt == "" {
				mt = r.Header.Get("Accept")
			}
			return p.Match(mt)
		}))

		return nil
	}
}

// A Pattern is a compiled media type pattern.
type Pattern struct {
	re *regexp2.Regexp
}

// CompilePattern compiles pattern, requiring it define a named capture group "version".
//
// Patterns follow RE2 syntax for named groups, (?P<version>...),
// and additionally support lookarounds.
func CompilePattern(pattern string) (*Pattern, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	re, err := regexp2.Compile(pattern, regexp2.RE2)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %s", rest.ErrNotValid, pattern, err)
	}

	var found bool
	for _, name := range re.GetGroupNames() {
		if name == GroupName {
			found = true
			break
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %w: %q", rest.ErrBadConfig, ErrNoVersionGroup, pattern)
	}

	re.MatchTimeout = matchTimeout
	return &Pattern{re: re}, nil
}

// Match applies the Pattern to s, returning the captured version or None.
// Empty input, no match, or a failed evaluation all return None.
func (p *Pattern) Match(s string) Version {
	if p == nil || s == "" {
		return None
	}

	m, err := p.re.FindStringMatch(s)
	if err != nil || m == nil {
		return None
	}

	g := m.GroupByName(GroupName)
	if g == nil || len(g.Captures) == 0 {
		return None
	}

	return New(g.String())
}
