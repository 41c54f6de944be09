package view

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// An Encoder serializes data for a data format.
type Encoder interface {
	Encode(w io.Writer, v any) error
}

// EncoderFunc adapts a function to an Encoder.
type EncoderFunc func(w io.Writer, v any) error

func (fn EncoderFunc) Encode(w io.Writer, v any) error { return fn(w, v) }

// JSONEncoder serializes data as JSON.
// Map keys are sorted and HTML is escaped, as encoding/json does.
type JSONEncoder struct{}

func (JSONEncoder) Encode(w io.Writer, v any) error {
	return sonic.ConfigStd.NewEncoder(w).Encode(v)
}

// XMLEncoder serializes data as XML, preceded by the XML header.
type XMLEncoder struct{}

func (XMLEncoder) Encode(w io.Writer, v any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	return xml.NewEncoder(w).Encode(v)
}

// YAMLEncoder serializes data as YAML.
type YAMLEncoder struct{}

func (YAMLEncoder) Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}

// TextEncoder writes data as formatted by fmt.
type TextEncoder struct{}

func (TextEncoder) Encode(w io.Writer, v any) error {
	_, err := fmt.Fprintln(w, v)
	return err
}

// DefaultEncoders returns the Encoders for the data formats of negotiation.DefaultRegistry.
func DefaultEncoders() map[string]Encoder {
	return map[string]Encoder{
		"json": JSONEncoder{},
		"xml":  XMLEncoder{},
		"yaml": YAMLEncoder{},
		"txt":  TextEncoder{},
	}
}
