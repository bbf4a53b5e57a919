package dsl

import (
	"context"
	"sort"

	"github.com/reoring/fmeaskema"
	js "github.com/reoring/fmeaskema/jsonschema"
)

// MapAny returns a Schema[map[string]any] that accepts any JSON object unchanged.
func MapAny() fmeaskema.Schema[map[string]any] { return mapAnySchema{} }

type mapAnySchema struct{}

func (mapAnySchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, typeIssue("expected object")
	}
	return m, nil
}
func (mapAnySchema) Validate(ctx context.Context, v any) error {
	_, err := mapAnySchema{}.Parse(ctx, v)
	return err
}
func (mapAnySchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "object", AdditionalProperties: true}, nil
}

// Map returns a schema for JSON objects where all properties are validated by elem schema.
// It decodes into map[string]V and validates each value using elem.
func Map[V any](elem fmeaskema.Schema[V]) fmeaskema.Schema[map[string]V] {
	return mapSchema[V]{val: elem}
}

// MapOf adapts Map[V] to AnyAdapter for use in object builders.
func MapOf[V any](elem fmeaskema.Schema[V]) AnyAdapter {
	return anyAdapterFromSchema[map[string]V](Map[V](elem))
}

type mapSchema[V any] struct{ val fmeaskema.Schema[V] }

func (m mapSchema[V]) Parse(ctx context.Context, v any) (map[string]V, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, typeIssue("expected object")
	}
	// sorted keys keep issue order deterministic
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]V, len(src))
	var iss fmeaskema.Issues
	for _, k := range keys {
		vv, err := m.val.Parse(fmeaskema.WithPathSegment(ctx, k), src[k])
		if err != nil {
			iss = fmeaskema.AppendIssues(iss, fmeaskema.IssuesFromErr("/"+fmeaskema.EscapePointerToken(k), err)...)
			if fmeaskema.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out[k] = vv
	}
	if len(iss) > 0 {
		return nil, iss
	}
	nn, err := fmeaskema.ApplyNormalize[map[string]V](ctx, out, m)
	if err != nil {
		return nil, err
	}
	if err := fmeaskema.ApplyRefine[map[string]V](ctx, nn, m); err != nil {
		return nil, err
	}
	return nn, nil
}

func (m mapSchema[V]) Validate(ctx context.Context, v any) error {
	_, err := m.Parse(ctx, v)
	return err
}

func (m mapSchema[V]) JSONSchema() (*js.Schema, error) {
	vs, err := m.val.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "object", AdditionalProperties: vs}, nil
}
