package config

import (
	"fmt"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/exception"
	"gopkg.in/yaml.v3"
)

// A TableEntry relates an exception class to a value.
type TableEntry[T comparable] struct {
	Class string `yaml:"class" toml:"class" validate:"required"`
	Value T      `yaml:"value" toml:"value"`
}

// A Table is an ordered list of TableEntries.
//
// In YAML, a Table is either a mapping, whose order is kept, or a sequence of entries.
type Table[T comparable] []TableEntry[T]

// UnmarshalYAML decodes a mapping or a sequence node into t, keeping the order of the node.
func (t *Table[T]) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		entries := make(Table[T], 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			var entry TableEntry[T]
			if err := node.Content[i].Decode(&entry.Class); err != nil {
				return err
			}

			if err := node.Content[i+1].Decode(&entry.Value); err != nil {
				return fmt.Errorf("%w: line %d: %s", rest.ErrNotValid, node.Content[i+1].Line, err)
			}

			entries = append(entries, entry)
		}

		*t = entries
		return nil

	case yaml.SequenceNode:
		var entries []TableEntry[T]
		if err := node.Decode(&entries); err != nil {
			return err
		}

		*t = entries
		return nil

	default:
		return fmt.Errorf("%w: line %d: exception table must be a mapping or a sequence", rest.ErrNotValid, node.Line)
	}
}

// Entries converts t into exception.Entries, in order.
func (t Table[T]) Entries() []exception.Entry[T] {
	entries := make([]exception.Entry[T], 0, len(t))
	for _, e := range t {
		entries = append(entries, exception.Entry[T]{Class: e.Class, Value: e.Value})
	}

	return entries
}
