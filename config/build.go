package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/exception"
	"github.com/xy-planning-network/rest/http/template"
	"github.com/xy-planning-network/rest/negotiation"
	"github.com/xy-planning-network/rest/version"
)

// Hierarchy constructs the default exception class hierarchy
// extended by the configured classes, in order.
func (c *Config) Hierarchy() (*exception.Hierarchy, error) {
	h := exception.DefaultHierarchy()
	for _, e := range c.Exception.Classes {
		if err := h.Extend(e.Class, e.Value); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// Codes constructs the table mapping exception classes to status codes.
func (c *Config) Codes(h *exception.Hierarchy) *exception.ValueMap[int] {
	return exception.NewValueMap(h, c.Exception.Codes.Entries()...)
}

// Messages constructs the table mapping exception classes to whether their messages are shown.
func (c *Config) Messages(h *exception.Hierarchy) *exception.ValueMap[bool] {
	return exception.NewValueMap(h, c.Exception.Messages.Entries()...)
}

// Registry constructs the default format registry with the configured formats added.
func (c *Config) Registry() (*negotiation.Registry, error) {
	reg := negotiation.DefaultRegistry()
	for _, f := range c.Formats {
		err := reg.Add(negotiation.Definition{
			Name:       f.Name,
			MediaTypes: f.MediaTypes,
			Templating: f.Templating,
			Versions:   f.Versions,
		})
		if err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// Negotiator constructs a *negotiation.Negotiator applying the configured rules against reg.
func (c *Config) Negotiator(reg *negotiation.Registry) (*negotiation.Negotiator, error) {
	rules := make([]negotiation.Rule, 0, len(c.Rules))
	for i, r := range c.Rules {
		rule := negotiation.Rule{
			Methods:         r.Methods,
			Priorities:      r.Priorities,
			FallbackFormat:  r.Fallback,
			PreferExtension: r.PreferExtension,
			AcceptOnly:      r.AcceptOnly,
			Stop:            r.Stop,
		}

		if r.Path != "" {
			re, err := regexp.Compile(r.Path)
			if err != nil {
				return nil, fmt.Errorf("%w: rules[%d].path: %s", rest.ErrBadConfig, i, err)
			}
			rule.Path = re
		}

		rules = append(rules, rule)
	}

	return negotiation.NewNegotiator(reg, rules...)
}

// Extractor constructs a *version.Extractor trying the configured strategies in order.
func (c *Config) Extractor() (*version.Extractor, error) {
	opts := make([]version.Option, 0, len(c.Versioning.Strategies))
	for _, s := range c.Versioning.Strategies {
		switch version.Strategy(strings.ToLower(string(s.Type))) {
		case version.Header:
			opts = append(opts, version.WithHeader(s.Key))
		case version.Query:
			opts = append(opts, version.WithQuery(s.Key))
		case version.MediaType:
			opts = append(opts, version.WithMediaType(s.Pattern))
		case version.Disabled:
		default:
			return nil, fmt.Errorf("%w: %w", rest.ErrBadConfig, s.Type.Valid())
		}
	}

	return version.NewExtractor(opts...)
}

// PathPattern constructs the pattern turning template references into paths.
func (c *Config) PathPattern() (*template.PathPattern, error) {
	return template.NewPathPattern(c.Templates.Pattern)
}
