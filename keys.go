package rest

import "context"

type Key string

const (
	// attributesKey stashes the Attributes of an HTTP request.
	attributesKey Key = "AttributesKey"

	// IpAddrKey stashes the IP address of an HTTP request.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "rest context key: " + string(k)
}

// Names of the well-known Attributes.
const (
	// FormatAttr names the format the response ought to be rendered in, e.g., "json".
	FormatAttr = "_format"

	// MediaTypeAttr names the media type chosen while negotiating the format.
	MediaTypeAttr = "media_type"

	// VersionAttr names the API version extracted from the request.
	VersionAttr = "version"

	// BufferLevelAttr names the buffer depth recorded when the request began.
	BufferLevelAttr = "ob_level"

	// ClientIPAttr names the address of the client that sent the request.
	ClientIPAttr = "client_ip"
)

// Attributes is a mutable set of values attached to a single HTTP request.
// Keys are unique and the last write wins.
//
// Attributes is a map, so middlewares and handlers sharing
// the same context.Context observe one another's writes.
type Attributes map[string]any

// NewAttributesContext attaches Attributes to ctx.
// If ctx already carries Attributes, those are returned and ctx is not changed.
func NewAttributesContext(ctx context.Context) (context.Context, Attributes) {
	if attrs, ok := ctx.Value(attributesKey).(Attributes); ok {
		return ctx, attrs
	}

	attrs := make(Attributes)
	return context.WithValue(ctx, attributesKey, attrs), attrs
}

// AttributesFromContext retrieves the Attributes in ctx.
// If none are attached, an empty, detached Attributes returns.
func AttributesFromContext(ctx context.Context) Attributes {
	attrs, ok := ctx.Value(attributesKey).(Attributes)
	if !ok {
		return make(Attributes)
	}

	return attrs
}

// Get returns the value stored for key, if any.
func (a Attributes) Get(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// Has asserts whether a value is stored for key.
func (a Attributes) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Int returns the value stored for key if it is an int.
func (a Attributes) Int(key string) (int, bool) {
	i, ok := a[key].(int)
	return i, ok
}

// Set stores val under key, overwriting any previous value.
func (a Attributes) Set(key string, val any) {
	if a == nil {
		return
	}
	a[key] = val
}

// String returns the value stored for key if it is a string,
// or the empty string otherwise.
func (a Attributes) String(key string) string {
	s, _ := a[key].(string)
	return s
}
