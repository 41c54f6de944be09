package version

// A Version is the API version requested by a client.
//
// The zero value is None, which is distinct from a Version holding the empty string.
type Version struct {
	value string
	ok    bool
}

// None is the absence of a version.
var None = Version{}

// New constructs a Version holding v.
func New(v string) Version { return Version{value: v, ok: true} }

// IsSet asserts whether v holds a version, including the empty string.
func (v Version) IsSet() bool { return v.ok }

// String returns the version, or the empty string for None.
func (v Version) String() string { return v.value }

// Or returns v when it is set and def otherwise.
func (v Version) Or(def Version) Version {
	if v.ok {
		return v
	}
	return def
}
