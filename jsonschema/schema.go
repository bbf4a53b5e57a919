// Package jsonschema holds the JSON Schema projection produced by schemas.
package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Nullable    bool   `json:"nullable,omitempty"`

	// String
	MinLength *int `json:"minLength,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Union
	OneOf         []*Schema      `json:"oneOf,omitempty"`
	Discriminator *Discriminator `json:"discriminator,omitempty"`
}

// Discriminator documents the tag property of a oneOf union (OpenAPI style).
type Discriminator struct {
	PropertyName string `json:"propertyName"`
}

// Clone returns a shallow copy of s so callers can annotate a shared schema.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return &Schema{}
	}
	c := *s
	return &c
}
