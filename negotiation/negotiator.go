package negotiation

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/version"
)

// A Rule configures how requests matching it are negotiated.
type Rule struct {
	// Path restricts the Rule to request paths matching it; nil matches every path.
	Path *regexp.Regexp

	// Methods restricts the Rule to these HTTP methods; empty matches every method.
	Methods []string

	// Priorities lists the acceptable format names, most preferred first.
	// Empty accepts every registered format in registration order.
	Priorities []string

	// FallbackFormat is used when nothing acceptable is found.
	FallbackFormat string

	// PreferExtension uses the extension of the request path, e.g., /users/1.json,
	// before consulting the Accept header.
	PreferExtension bool

	// AcceptOnly ignores the _format attribute and the path extension.
	AcceptOnly bool

	// Stop declines negotiation when nothing acceptable is found
	// and no FallbackFormat is set.
	Stop bool
}

// matches asserts whether the Rule applies to r.
func (rule Rule) matches(r *http.Request) bool {
	if rule.Path != nil && (r.URL == nil || !rule.Path.MatchString(r.URL.Path)) {
		return false
	}

	if len(rule.Methods) == 0 {
		return true
	}

	for _, m := range rule.Methods {
		if strings.EqualFold(m, r.Method) {
			return true
		}
	}

	return false
}

// A Result is the outcome of a successful negotiation.
type Result struct {
	Format Format

	// MediaType is the media type chosen,
	// including parameters when the client named it exactly.
	MediaType string
}

// A Negotiator selects the Format to respond in.
//
// A Negotiator is safe for concurrent use once constructed.
type Negotiator struct {
	registry *Registry
	rules    []Rule
}

// NewNegotiator constructs a *Negotiator.
// Rules are evaluated in order; the first one matching a request applies.
// With no rules, a single Rule accepting every registered format applies to all requests.
//
// Every format named by a Rule must be registered.
func NewNegotiator(reg *Registry, rules ...Rule) (*Negotiator, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: no format registry", rest.ErrBadConfig)
	}

	if len(rules) == 0 {
		rules = []Rule{{}}
	}

	for i, rule := range rules {
		names := rule.Priorities
		if rule.FallbackFormat != "" {
			names = append(append([]string{}, names...), rule.FallbackFormat)
		}

		for _, name := range names {
			if _, ok := reg.Get(name); !ok {
				return nil, fmt.Errorf("%w: %w: rule %d names %q", rest.ErrBadConfig, ErrUnknownFormat, i, name)
			}
		}
	}

	return &Negotiator{registry: reg, rules: rules}, nil
}

// Registry returns the *Registry the Negotiator consults.
func (n *Negotiator) Registry() *Registry { return n.registry }

// Negotiate selects the Format for r, admitting only Definitions accepting v.
//
// The _format attribute, then the path extension when preferred, then the Accept header
// are consulted, followed by the Rule's fallback.
// Negotiate returns ErrStopNegotiation when no Rule applies
// or the applicable Rule stops,
// and ErrNotAcceptable when nothing acceptable is found.
//
// A request without an Accept header accepts anything, as if it sent */*.
//
// Negotiate does not modify r.
func (n *Negotiator) Negotiate(r *http.Request, v version.Version) (Result, error) {
	var p string
	if r.URL != nil {
		p = r.URL.Path
	}

	rule, ok := n.rule(r)
	if !ok {
		return Result{}, fmt.Errorf("%w: no rule matches %s %s", ErrStopNegotiation, r.Method, p)
	}

	candidates := n.candidates(rule, v)

	if !rule.AcceptOnly {
		attrs := rest.AttributesFromContext(r.Context())
		if res, ok := n.named(attrs.String(rest.FormatAttr), candidates); ok {
			return res, nil
		}

		if rule.PreferExtension {
			if f, ok := n.registry.Extension(p); ok {
				if res, ok := n.named(f.Name, candidates); ok {
					return res, nil
				}
			}
		}
	}

	accept := r.Header.Get("Accept")
	if strings.TrimSpace(accept) == "" {
		accept = "*/*"
	}

	for _, mr := range ParseAccept(accept) {
		for _, d := range candidates {
			for _, mt := range d.MediaTypes {
				if !mr.Matches(mt) {
					continue
				}

				chosen := mt
				if !mr.IsWildcard() {
					chosen = mr.Raw
				}

				return Result{Format: d.Format(), MediaType: chosen}, nil
			}
		}
	}

	if rule.FallbackFormat != "" {
		d, _ := n.registry.Get(rule.FallbackFormat)
		return Result{Format: d.Format(), MediaType: d.MediaTypes[0]}, nil
	}

	if rule.Stop {
		return Result{}, fmt.Errorf("%w: nothing acceptable in %q", ErrStopNegotiation, r.Header.Get("Accept"))
	}

	return Result{}, fmt.Errorf("%w: %q", ErrNotAcceptable, r.Header.Get("Accept"))
}

// rule returns the first Rule matching r.
func (n *Negotiator) rule(r *http.Request) (Rule, bool) {
	for _, rule := range n.rules {
		if rule.matches(r) {
			return rule, true
		}
	}

	return Rule{}, false
}

// candidates returns the Definitions acceptable under rule for v, most preferred first.
func (n *Negotiator) candidates(rule Rule, v version.Version) []Definition {
	names := rule.Priorities
	if len(names) == 0 {
		names = n.registry.Names()
	}

	defs := make([]Definition, 0, len(names))
	for _, name := range names {
		d, ok := n.registry.Get(name)
		if ok && d.Admits(v) {
			defs = append(defs, d)
		}
	}

	return defs
}

// named returns the Result for the format named name when it is among candidates.
func (n *Negotiator) named(name string, candidates []Definition) (Result, bool) {
	if name == "" {
		return Result{}, false
	}

	for _, d := range candidates {
		if d.Name == strings.ToLower(name) {
			return Result{Format: d.Format(), MediaType: d.MediaTypes[0]}, true
		}
	}

	return Result{}, false
}
