package negotiation

import (
	"sort"
	"strconv"
	"strings"
)

// A MediaRange is a single entry in an Accept header,
// e.g., application/json;q=0.8.
type MediaRange struct {
	// Raw is the entry without its quality parameter.
	Raw string

	Type    string
	Subtype string
	Params  map[string]string
	Quality float64

	// Index is the position of the entry in the Accept header.
	Index int
}

// Specificity ranks how precisely the MediaRange names a media type:
// */* is 0, type/* is 1, type/subtype is 2,
// and each parameter other than q adds one more.
func (mr MediaRange) Specificity() int {
	switch {
	case mr.Type == "*":
		return 0
	case mr.Subtype == "*":
		return 1
	default:
		return 2 + len(mr.Params)
	}
}

// IsWildcard asserts whether mr contains a wildcard.
func (mr MediaRange) IsWildcard() bool { return mr.Type == "*" || mr.Subtype == "*" }

// Matches asserts whether the concrete media type falls within the MediaRange.
// Parameters on mediaType are ignored.
func (mr MediaRange) Matches(mediaType string) bool {
	typ, sub, ok := splitMediaType(mediaType)
	if !ok {
		return false
	}

	if mr.Type == "*" {
		return true
	}

	if mr.Type != typ {
		return false
	}

	return mr.Subtype == "*" || mr.Subtype == sub
}

// MediaType returns the type/subtype of the MediaRange.
func (mr MediaRange) MediaType() string { return mr.Type + "/" + mr.Subtype }

// ParseAccept parses the value of an Accept header into MediaRanges
// ordered by quality, highest first.
// Ties are broken by the order entries appear in the header
// and then by their Specificity.
//
// Malformed entries and entries with q=0 are dropped.
// An empty header yields no MediaRanges.
func ParseAccept(header string) []MediaRange {
	if strings.TrimSpace(header) == "" {
		return nil
	}

	ranges := make([]MediaRange, 0)
	for i, part := range strings.Split(header, ",") {
		mr, ok := parseMediaRange(part)
		if !ok || mr.Quality <= 0 {
			continue
		}

		mr.Index = i
		ranges = append(ranges, mr)
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		a, b := ranges[i], ranges[j]
		if a.Quality != b.Quality {
			return a.Quality > b.Quality
		}

		if a.Index != b.Index {
			return a.Index < b.Index
		}

		return a.Specificity() > b.Specificity()
	})

	return ranges
}

// parseMediaRange parses a single Accept header entry.
func parseMediaRange(s string) (MediaRange, bool) {
	parts := strings.Split(s, ";")
	typ, sub, ok := splitMediaType(parts[0])
	if !ok {
		return MediaRange{}, false
	}

	if typ == "*" && sub != "*" {
		return MediaRange{}, false
	}

	mr := MediaRange{Type: typ, Subtype: sub, Quality: 1}
	raw := []string{typ + "/" + sub}
	for _, p := range parts[1:] {
		k, v, found := strings.Cut(p, "=")
		k = strings.ToLower(strings.TrimSpace(k))
		if !found || k == "" {
			continue
		}

		v = strings.Trim(strings.TrimSpace(v), `"`)
		if k == "q" {
			q, err := strconv.ParseFloat(v, 64)
			if err != nil || q < 0 || q > 1 {
				return MediaRange{}, false
			}

			mr.Quality = q
			continue
		}

		if mr.Params == nil {
			mr.Params = make(map[string]string)
		}

		mr.Params[k] = v
		raw = append(raw, k+"="+v)
	}

	mr.Raw = strings.Join(raw, ";")
	return mr, true
}

// splitMediaType lowers and splits a media type into its type and subtype,
// discarding any parameters.
func splitMediaType(s string) (string, string, bool) {
	s, _, _ = strings.Cut(s, ";")
	s = strings.ToLower(strings.TrimSpace(s))

	typ, sub, found := strings.Cut(s, "/")
	if !found || typ == "" || sub == "" || strings.ContainsAny(typ, " \t") || strings.ContainsAny(sub, " \t") {
		return "", "", false
	}

	return typ, sub, true
}
