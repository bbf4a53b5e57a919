package dsl

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/i18n"
	js "github.com/reoring/fmeaskema/jsonschema"
)

// TaggedUnionBuilder assembles a closed discriminated union whose variants
// share the Go interface type U.
type TaggedUnionBuilder[U any] struct {
	discriminator string
	name          string
	cases         map[string]fmeaskema.Schema[U]
	order         []fmeaskema.Schema[U]
	tags          []string
	err           error
}

// TaggedUnion starts a union dispatched on the string value of discriminator.
func TaggedUnion[U any](discriminator string) *TaggedUnionBuilder[U] {
	return &TaggedUnionBuilder[U]{discriminator: discriminator, cases: map[string]fmeaskema.Schema[U]{}}
}

// Named sets the union name used in JSON Schema and hints.
func (b *TaggedUnionBuilder[U]) Named(name string) *TaggedUnionBuilder[U] {
	b.name = name
	return b
}

// Case routes every listed tag to s. A tag may be routed only once.
func (b *TaggedUnionBuilder[U]) Case(s fmeaskema.Schema[U], tags ...string) *TaggedUnionBuilder[U] {
	if s == nil || len(tags) == 0 {
		b.err = fmt.Errorf("union %q: case needs a schema and at least one tag", b.name)
		return b
	}
	for _, t := range tags {
		if _, dup := b.cases[t]; dup {
			b.err = fmt.Errorf("union %q: tag %q routed twice", b.name, t)
			return b
		}
		b.cases[t] = s
		b.tags = append(b.tags, t)
	}
	b.order = append(b.order, s)
	return b
}

// Build returns the union schema.
func (b *TaggedUnionBuilder[U]) Build() (fmeaskema.Schema[U], error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.cases) == 0 {
		return nil, fmt.Errorf("union %q: no cases", b.name)
	}
	return &unionSchema[U]{
		discriminator: b.discriminator,
		name:          b.name,
		mapping:       maps.Clone(b.cases),
		order:         slices.Clone(b.order),
		tags:          slices.Clone(b.tags),
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *TaggedUnionBuilder[U]) MustBuild() fmeaskema.Schema[U] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// unionSchema is a discriminated union over JSON objects.
type unionSchema[U any] struct {
	discriminator string
	name          string
	mapping       map[string]fmeaskema.Schema[U]
	order         []fmeaskema.Schema[U]
	tags          []string
}

// Tags returns the accepted discriminator values in declaration order.
func (u *unionSchema[U]) Tags() []string { return slices.Clone(u.tags) }

func (u *unionSchema[U]) Parse(ctx context.Context, v any) (U, error) {
	var zero U
	m, ok := v.(map[string]any)
	if !ok {
		return zero, typeIssue("expected object")
	}
	path := "/" + fmeaskema.EscapePointerToken(u.discriminator)
	dv, present := m[u.discriminator]
	if !present || dv == nil {
		return zero, fmeaskema.Issues{fmeaskema.Issue{
			Path:    path,
			Code:    fmeaskema.CodeDiscriminatorMissing,
			Message: i18n.T(fmeaskema.CodeDiscriminatorMissing, nil),
			Hint:    "discriminator missing",
			Params:  map[string]any{"allowed": u.Tags()},
		}}
	}
	tag, _ := dv.(string)
	s, ok := u.mapping[tag]
	if !ok {
		return zero, fmeaskema.Issues{fmeaskema.Issue{
			Path:    path,
			Code:    fmeaskema.CodeDiscriminatorUnknown,
			Message: i18n.T(fmeaskema.CodeDiscriminatorUnknown, nil),
			Hint:    fmt.Sprintf("unknown variant: '%v'", dv),
			Params:  map[string]any{u.discriminator: fmt.Sprint(dv), "allowed": u.Tags()},
		}}
	}
	out, err := s.Parse(ctx, v)
	if err != nil {
		iss := fmeaskema.IssuesFromErr("", err)
		for i := range iss {
			if iss[i].Params == nil {
				iss[i].Params = map[string]any{}
			}
			iss[i].Params[u.discriminator] = tag
		}
		return zero, iss
	}
	return out, nil
}

func (u *unionSchema[U]) Validate(ctx context.Context, v any) error {
	_, err := u.Parse(fmeaskema.WithWarningSink(ctx, func(context.Context, fmeaskema.Warning) {}), v)
	return err
}

func (u *unionSchema[U]) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Title: u.name, Discriminator: &js.Discriminator{PropertyName: u.discriminator}}
	out.OneOf = make([]*js.Schema, 0, len(u.order))
	for _, s := range u.order {
		vs, err := s.JSONSchema()
		if err != nil {
			return nil, err
		}
		out.OneOf = append(out.OneOf, vs)
	}
	return out, nil
}

// Widen lifts a variant schema producing T into one producing the union
// interface U. It panics when T does not implement U.
func Widen[U, T any](s fmeaskema.Schema[T]) fmeaskema.Schema[U] {
	var zero T
	if _, ok := any(zero).(U); !ok {
		panic(fmt.Sprintf("dsl.Widen: %T does not implement %T", zero, (*U)(nil)))
	}
	return widened[U, T]{inner: s}
}

type widened[U, T any] struct{ inner fmeaskema.Schema[T] }

func (w widened[U, T]) Parse(ctx context.Context, v any) (U, error) {
	t, err := w.inner.Parse(ctx, v)
	if err != nil {
		var zero U
		return zero, err
	}
	return any(t).(U), nil
}
func (w widened[U, T]) Validate(ctx context.Context, v any) error { return w.inner.Validate(ctx, v) }
func (w widened[U, T]) JSONSchema() (*js.Schema, error)           { return w.inner.JSONSchema() }
