// Package jsonschema exports record schemas as JSON Schema documents.
package jsonschema

import (
	"fmt"

	json "github.com/goccy/go-json"
	ijs "github.com/invopop/jsonschema"

	serdes "github.com/riseshia/serdes"
)

// Export renders s as a JSON Schema object. Properties follow declaration
// order under their external keys, non-optional fields are required and
// strict records forbid additional properties. Nested records are inlined.
func Export(s *serdes.Schema) *ijs.Schema {
	out := record(s)
	out.Version = ijs.Version
	return out
}

// Marshal exports s and encodes it as JSON. A non-empty indent pretty-prints.
func Marshal(s *serdes.Schema, indent string) ([]byte, error) {
	doc := Export(s)
	var (
		b   []byte
		err error
	)
	if indent != "" {
		b, err = json.MarshalIndent(doc, "", indent)
	} else {
		b, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal %s: %w", s.Name(), err)
	}
	return b, nil
}

func record(s *serdes.Schema) *ijs.Schema {
	out := &ijs.Schema{
		Type:       "object",
		Title:      s.Name(),
		Properties: ijs.NewProperties(),
	}
	for _, f := range s.Fields() {
		key := propertyName(f.Key())
		out.Properties.Set(key, field(f.Descriptor(), f.Options().AllowedValues))
		if !f.Optional() {
			out.Required = append(out.Required, key)
		}
	}
	if s.Strict() {
		out.AdditionalProperties = ijs.FalseSchema
	}
	return out
}

func field(d serdes.Descriptor, allowed []any) *ijs.Schema {
	switch t := d.(type) {
	case serdes.Optional:
		return &ijs.Schema{AnyOf: []*ijs.Schema{
			field(t.Inner, allowed),
			{Type: "null"},
		}}
	case serdes.Array:
		return &ijs.Schema{Type: "array", Items: field(t.Elem, allowed)}
	case serdes.Concrete:
		out := leaf(t.Kind)
		for _, v := range allowed {
			if v != nil {
				out.Enum = append(out.Enum, v)
			}
		}
		return out
	}
	return &ijs.Schema{}
}

func leaf(k serdes.Kind) *ijs.Schema {
	switch k {
	case serdes.String:
		return &ijs.Schema{Type: "string"}
	case serdes.Integer:
		return &ijs.Schema{Type: "integer"}
	case serdes.Float:
		return &ijs.Schema{Type: "number"}
	case serdes.Boolean:
		return &ijs.Schema{Type: "boolean"}
	}
	if s, ok := k.(*serdes.Schema); ok {
		return record(s)
	}
	// custom kinds carry no structural constraint
	return &ijs.Schema{Title: k.Name()}
}

func propertyName(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case serdes.Symbol:
		return string(k)
	}
	return fmt.Sprint(key)
}
