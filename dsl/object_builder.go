package dsl

import (
	"context"
	"maps"
	"slices"
	"sort"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/i18n"
	js "github.com/reoring/fmeaskema/jsonschema"
)

// ObjectBuilder is the builder returned by Object. Helpers that add a shared
// group of fields take and return it.
type ObjectBuilder = objectBuilder

type objectBuilder struct {
	name          string
	fields        map[string]AnyAdapter
	aliases       map[string][][]string
	descriptions  map[string]string
	required      map[string]struct{}
	unknownPolicy fmeaskema.UnknownPolicy
	before        []objRefine
	refines       []objRefine
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder with safe defaults (UnknownStrict).
func Object() *objectBuilder {
	return &objectBuilder{
		fields:        map[string]AnyAdapter{},
		aliases:       map[string][][]string{},
		descriptions:  map[string]string{},
		required:      map[string]struct{}{},
		unknownPolicy: fmeaskema.UnknownStrict,
	}
}

// Named sets the model name reported in warnings and exported as the JSON Schema title.
func (b *objectBuilder) Named(name string) *objectBuilder {
	b.name = name
	return b
}

// Field registers a field with its adapter under its canonical name.
func (b *objectBuilder) Field(name string, ad AnyAdapter) *fieldStep {
	b.fields[name] = ad
	return &fieldStep{b: b, name: name}
}

// Alias registers alternative wire names for the current field. The canonical
// name is read first, then aliases in declaration order.
func (f *fieldStep) Alias(names ...string) *fieldStep {
	for _, n := range names {
		f.b.aliases[f.name] = append(f.b.aliases[f.name], []string{n})
	}
	return f
}

// AliasPath registers a nested wire location for the current field, e.g.
// AliasPath("meta", "id") reads {"meta":{"id":...}}. Only the first segment
// becomes an accepted top-level key.
func (f *fieldStep) AliasPath(segments ...string) *fieldStep {
	if len(segments) > 0 {
		f.b.aliases[f.name] = append(f.b.aliases[f.name], slices.Clone(segments))
	}
	return f
}

// Describe attaches a JSON Schema description to the current field.
func (f *fieldStep) Describe(text string) *fieldStep {
	f.b.descriptions[f.name] = text
	return f
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.required[f.name] = struct{}{}
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	delete(f.b.required, f.name)
	return f.b
}

// Default sets a default for the current field and exports it to JSON Schema.
// The default is parsed through the field schema on every use, so nested
// defaults apply and callers never share a mutable value.
func (f *fieldStep) Default(v any) *objectBuilder {
	ad := f.b.fields[f.name]
	parse := ad.parse
	ad.applyDefault = func(ctx context.Context) (any, error) {
		if parse == nil {
			return v, nil
		}
		return parse(ctx, v)
	}
	prev := ad.jsonSchema
	ad.jsonSchema = func() (*js.Schema, error) {
		if prev == nil {
			return &js.Schema{Default: v}, nil
		}
		s, err := prev()
		if err != nil {
			return nil, err
		}
		s = s.Clone()
		s.Default = v
		return s, nil
	}
	f.b.fields[f.name] = ad
	return f.b
}

func (f *fieldStep) UnknownStrict() *objectBuilder      { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *objectBuilder       { return f.b.UnknownStrip() }
func (f *fieldStep) UnknownWarn() *objectBuilder        { return f.b.UnknownWarn() }
func (f *fieldStep) UnknownPassthrough() *objectBuilder { return f.b.UnknownPassthrough() }
func (f *fieldStep) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	return f.b.Refine(name, fn)
}
func (f *fieldStep) Field(name string, ad AnyAdapter) *fieldStep      { return f.b.Field(name, ad) }
func (f *fieldStep) Build() (fmeaskema.Schema[map[string]any], error) { return f.b.Build() }
func (f *fieldStep) MustBuild() fmeaskema.Schema[map[string]any]      { return f.b.MustBuild() }

// Require marks one or more fields as required.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// UnknownStrict rejects undeclared keys with unknown_key issues.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknownPolicy = fmeaskema.UnknownStrict
	return b
}

// UnknownStrip drops undeclared keys silently.
func (b *objectBuilder) UnknownStrip() *objectBuilder {
	b.unknownPolicy = fmeaskema.UnknownStrip
	return b
}

// UnknownWarn drops undeclared keys and emits one Warning per record naming them.
func (b *objectBuilder) UnknownWarn() *objectBuilder {
	b.unknownPolicy = fmeaskema.UnknownWarn
	return b
}

// UnknownPassthrough keeps undeclared keys, with their original values, in the parsed record.
func (b *objectBuilder) UnknownPassthrough() *objectBuilder {
	b.unknownPolicy = fmeaskema.UnknownPassthrough
	return b
}

// Before adds a hook that inspects the raw input record before unknown keys
// are handled or any field is parsed. A failing hook stops parsing.
func (b *objectBuilder) Before(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	if fn != nil {
		b.before = append(b.before, objRefine{name: name, fn: fn})
	}
	return b
}

// Refine adds an object-level refine function. It is executed after all fields parsed.
func (b *objectBuilder) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	if fn != nil {
		b.refines = append(b.refines, objRefine{name: name, fn: fn})
	}
	return b
}

// Build validates the builder and returns a Schema.
func (b *objectBuilder) Build() (fmeaskema.Schema[map[string]any], error) {
	return b.build()
}

func (b *objectBuilder) build() (*objectSchema, error) {
	kfs := make([]string, 0, len(b.fields))
	for k := range b.fields {
		kfs = append(kfs, k)
	}
	sort.Strings(kfs)

	// the accepted-key set is resolved once and never mutated afterwards
	accepted := make(map[string]struct{}, len(b.fields))
	aliases := make(map[string][][]string, len(b.aliases))
	for _, k := range kfs {
		accepted[k] = struct{}{}
	}
	for k, paths := range b.aliases {
		if _, ok := b.fields[k]; !ok {
			return nil, fmeaskema.Issues{fmeaskema.Issue{Path: "/" + fmeaskema.EscapePointerToken(k), Code: fmeaskema.CodeParseError, Message: i18n.T(fmeaskema.CodeParseError, nil), Hint: "alias declared for unknown field"}}
		}
		for _, p := range paths {
			accepted[p[0]] = struct{}{}
		}
		aliases[k] = slices.Clone(paths)
	}
	for k := range b.required {
		if _, ok := b.fields[k]; !ok {
			return nil, fmeaskema.Issues{fmeaskema.Issue{Path: "/" + fmeaskema.EscapePointerToken(k), Code: fmeaskema.CodeParseError, Message: i18n.T(fmeaskema.CodeParseError, nil), Hint: "required key has no field"}}
		}
	}
	return &objectSchema{
		name:          b.name,
		fields:        maps.Clone(b.fields),
		aliases:       aliases,
		descriptions:  maps.Clone(b.descriptions),
		required:      maps.Clone(b.required),
		accepted:      accepted,
		unknownPolicy: b.unknownPolicy,
		before:        slices.Clone(b.before),
		refines:       slices.Clone(b.refines),
		sortedKeys:    kfs,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() fmeaskema.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
