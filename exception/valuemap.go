package exception

import "fmt"

// An Entry relates a class, and its descendants, to a value.
type Entry[T comparable] struct {
	Class string
	Value T
}

// A Resolution is the outcome of resolving an error against a ValueMap.
type Resolution[T comparable] struct {
	// Class of the resolved error.
	Class string

	// Value of the matching Entry.
	Value T

	// Mapped asserts whether an Entry matched.
	Mapped bool

	// Note describes why resolution could not be carried out, if it could not.
	Note string
}

// A ValueMap is an ordered table of Entries.
//
// A ValueMap is immutable once constructed and safe for concurrent use.
type ValueMap[T comparable] struct {
	h       *Hierarchy
	entries []Entry[T]
}

// NewValueMap constructs a *ValueMap consulting h for ancestry.
func NewValueMap[T comparable](h *Hierarchy, entries ...Entry[T]) *ValueMap[T] {
	m := &ValueMap[T]{h: h, entries: make([]Entry[T], len(entries))}
	copy(m.entries, entries)
	return m
}

// Entries returns the Entries of m in order.
func (m *ValueMap[T]) Entries() []Entry[T] {
	if m == nil {
		return nil
	}

	out := make([]Entry[T], len(m.entries))
	copy(out, m.entries)
	return out
}

// Resolve resolves the class of err.
func (m *ValueMap[T]) Resolve(err error) Resolution[T] {
	return m.ResolveClass(ClassOf(err))
}

// ResolveClass returns the Value of the first Entry, in configured order,
// with a non-zero Value whose Class is class or one of its ancestors.
//
// Entries are not ranked by how near an ancestor they name.
// Given {FooException: 404, Exception: 500},
// BarException extending FooException resolves to 404,
// whereas {Exception: 500, FooException: 404} resolves it to 500.
//
// Classes are compared by the names the Hierarchy's Canonical resolves them to.
// A class, or an Entry's Class, unknown to the Hierarchy stops resolution:
// the Resolution is not mapped and its Note says why.
func (m *ValueMap[T]) ResolveClass(class string) Resolution[T] {
	res := Resolution[T]{Class: class}
	if m == nil {
		return res
	}

	var zero T
	class = m.h.Canonical(class)
	for _, e := range m.entries {
		if e.Value == zero {
			continue
		}

		if m.h.Canonical(e.Class) == class {
			res.Value, res.Mapped = e.Value, true
			return res
		}

		if !m.h.Knows(e.Class) {
			res.Note = fmt.Sprintf("invalid class %q in exception table: %s", e.Class, ErrUnknownClass)
			return res
		}

		if !m.h.Knows(class) {
			res.Note = fmt.Sprintf("cannot classify %q: %s", class, ErrUnknownClass)
			return res
		}

		if m.h.IsA(class, e.Class) {
			res.Value, res.Mapped = e.Value, true
			return res
		}
	}

	return res
}
