package info

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// JSONSchema returns a JSON Schema document describing data/info.json,
// including the legacy shapes the decoder accepts.
func JSONSchema() ([]byte, error) {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	s := r.Reflect(&Info{})
	s.Title = "folio data file"
	s.Description = "Profile, publications and site content rendered by folio."
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling schema: %w", err)
	}
	return out, nil
}

// inline reflects a method-free copy of a union type's object form.
// Only used for non-recursive types.
func inline(v any) *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(v)
	s.Version = ""
	return s
}

func oneOf(alts ...*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{OneOf: alts}
}

func typed(t string) *jsonschema.Schema { return &jsonschema.Schema{Type: t} }

func arrayOf(items *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: items}
}

type (
	plainName  PersonName
	plainEmail Email
	plainVenue Venue
)

func (PersonName) JSONSchema() *jsonschema.Schema {
	return oneOf(typed("string"), inline(plainName{}))
}

func (Email) JSONSchema() *jsonschema.Schema {
	return oneOf(typed("string"), inline(plainEmail{}))
}

func (Venue) JSONSchema() *jsonschema.Schema {
	return oneOf(typed("string"), inline(plainVenue{}))
}

func (Year) JSONSchema() *jsonschema.Schema {
	return oneOf(
		&jsonschema.Schema{Type: "integer"},
		&jsonschema.Schema{Type: "string", Pattern: `^\d{4}$`},
	)
}

func (Paragraphs) JSONSchema() *jsonschema.Schema {
	return oneOf(typed("string"), arrayOf(typed("string")))
}

func (ProfileLinks) JSONSchema() *jsonschema.Schema {
	return oneOf(
		arrayOf(inline(Link{})),
		&jsonschema.Schema{Type: "object", AdditionalProperties: typed("string")},
	)
}
