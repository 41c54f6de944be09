package listener

import (
	"github.com/xy-planning-network/rest/logger"
	"github.com/xy-planning-network/rest/negotiation"
	"github.com/xy-planning-network/rest/version"
)

// A ListenerOptFn applies functional options to a *Listener when constructing it.
type ListenerOptFn func(*Listener)

// WithExtractor sets the *version.Extractor resolving versions.
func WithExtractor(e *version.Extractor) ListenerOptFn {
	return func(l *Listener) {
		if e != nil {
			l.extractor = e
		}
	}
}

// WithLogger sets the logger.Logger.
func WithLogger(lg logger.Logger) ListenerOptFn {
	return func(l *Listener) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// WithNegotiator sets the *negotiation.Negotiator resolving formats.
func WithNegotiator(n *negotiation.Negotiator) ListenerOptFn {
	return func(l *Listener) {
		if n != nil {
			l.negotiator = n
		}
	}
}
