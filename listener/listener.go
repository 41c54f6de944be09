package listener

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/exception"
	"github.com/xy-planning-network/rest/logger"
	"github.com/xy-planning-network/rest/negotiation"
	"github.com/xy-planning-network/rest/version"
)

// A State is how far a Listener has resolved requests.
type State int

const (
	Uninitialized State = iota
	VersionResolved
	FormatResolved
)

func (s State) String() string {
	switch s {
	case VersionResolved:
		return "version resolved"
	case FormatResolved:
		return "format resolved"
	default:
		return "uninitialized"
	}
}

// A Listener resolves the version and format of requests.
//
// The first version resolved is kept by the Listener until Reset or SetVersion is called.
// A version set with SetVersion stands in for requests that carry none.
// The format is resolved anew for every request.
//
// A Listener is safe for concurrent use.
type Listener struct {
	extractor  *version.Extractor
	logger     logger.Logger
	negotiator *negotiation.Negotiator

	mu      sync.Mutex
	pinned  bool
	state   State
	version version.Version
}

// New constructs a *Listener using the ListenerOptFns passed in.
//
// By default, no version is extracted and formats are negotiated against negotiation.DefaultRegistry.
func New(opts ...ListenerOptFn) *Listener {
	n, _ := negotiation.NewNegotiator(negotiation.DefaultRegistry())
	l := &Listener{
		extractor:  new(version.Extractor),
		logger:     logger.New(),
		negotiator: n,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// OnRequest resolves the version and format of r, recording them in its attributes.
// The returned *http.Request carries those attributes and ought to replace r.
//
// When negotiation stops, the format attributes are left untouched.
// When no format is acceptable, OnRequest returns an error
// classed exception.NotAcceptableClass.
func (l *Listener) OnRequest(r *http.Request) (*http.Request, error) {
	ctx, attrs := rest.NewAttributesContext(r.Context())
	if ctx != r.Context() {
		r = r.WithContext(ctx)
	}

	v := l.extractor.Extract(r)
	if !v.IsSet() {
		v = l.pinnedVersion()
	}
	if v.IsSet() {
		attrs.Set(rest.VersionAttr, v.String())
	}
	l.resolveVersion(v)

	res, err := l.negotiator.Negotiate(r, v)
	switch {
	case err == nil:
		attrs.Set(rest.FormatAttr, res.Format.Name)
		attrs.Set(rest.MediaTypeAttr, res.MediaType)
		l.advance(FormatResolved)
		return r, nil

	case errors.Is(err, negotiation.ErrStopNegotiation):
		l.logger.Debug("format negotiation stopped", &logger.LogContext{Request: r, Error: err, Version: v.String()})
		return r, nil

	default:
		return r, exception.NewHTTP(
			http.StatusNotAcceptable,
			fmt.Sprintf("no acceptable format for %q", r.Header.Get("Accept")),
			exception.WithCause(err),
		)
	}
}

// Reset forgets the version kept by l.
func (l *Listener) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.version = version.None
	l.pinned = false
	l.state = Uninitialized
}

// SetVersion replaces the version kept by l.
func (l *Listener) SetVersion(v version.Version) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.version = v
	l.pinned = v.IsSet()
	if v.IsSet() && l.state < VersionResolved {
		l.state = VersionResolved
	}
}

// State returns how far l has resolved requests.
func (l *Listener) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state
}

// Version returns the version kept by l.
func (l *Listener) Version() version.Version {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.version
}

// pinnedVersion returns the version set with SetVersion, if any.
func (l *Listener) pinnedVersion() version.Version {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.pinned {
		return version.None
	}

	return l.version
}

// resolveVersion keeps v unless a version is already kept.
func (l *Listener) resolveVersion(v version.Version) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.version.IsSet() {
		l.version = v
	}

	if l.state < VersionResolved {
		l.state = VersionResolved
	}
}

func (l *Listener) advance(s State) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state < s {
		l.state = s
	}
}
