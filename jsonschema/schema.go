package jsonschema

import (
	"bytes"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonshape"
)

// Draft is the dialect written into exported root schemas.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	Dialect string `json:"$schema,omitempty" yaml:"$schema,omitempty"`

	// Core
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty" yaml:"items,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
}

// FromType projects a canonical type. Compounds are closed objects requiring
// every member; unions become anyOf since their cases may overlap (integer
// and number). Unknown becomes the empty (accept-all) schema.
func FromType(u *jsonshape.Universe, t jsonshape.TypeID) *Schema {
	s := fromType(u, t)
	s.Dialect = Draft
	return s
}

func fromType(u *jsonshape.Universe, t jsonshape.TypeID) *Schema {
	d := u.Describe(t)
	switch d.Kind {
	case jsonshape.KindNone:
		return &Schema{Type: "null"}
	case jsonshape.KindString:
		return &Schema{Type: "string"}
	case jsonshape.KindInt:
		return &Schema{Type: "integer"}
	case jsonshape.KindFloat:
		return &Schema{Type: "number"}
	case jsonshape.KindBool:
		return &Schema{Type: "boolean"}
	case jsonshape.KindArray:
		return &Schema{Type: "array", Items: fromType(u, d.Elem)}
	case jsonshape.KindCompound:
		closed := false
		s := &Schema{Type: "object", Properties: make(map[string]*Schema, len(d.Members)), AdditionalProperties: &closed}
		for _, m := range d.Members {
			name := m.Name.String()
			s.Properties[name] = fromType(u, m.Type)
			s.Required = append(s.Required, name)
		}
		return s
	case jsonshape.KindUnion:
		s := &Schema{}
		for _, c := range d.Cases {
			s.AnyOf = append(s.AnyOf, fromType(u, c))
		}
		return s
	}
	return &Schema{}
}

// EncodeJSON renders s as indented JSON.
func EncodeJSON(s *Schema) ([]byte, error) {
	return j.MarshalIndent(s, "", "  ")
}

// EncodeYAML renders s as YAML.
func EncodeYAML(s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
