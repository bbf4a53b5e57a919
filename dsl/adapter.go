package dsl

import (
	"context"
	"encoding/json"
	"reflect"
	"strconv"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/i18n"
	js "github.com/reoring/fmeaskema/jsonschema"
)

// AnyAdapter adapts Schema[T] to an any-typed DSL wrapper.
// It keeps the original schema to support default application and JSON Schema
// augmentation.
type AnyAdapter struct {
	parse        func(context.Context, any) (any, error)
	applyDefault func(context.Context) (any, error)
	jsonSchema   func() (*js.Schema, error)
	orig         any
}

var _ fmeaskema.Schema[any] = AnyAdapter{}

// anyAdapterFromSchema wraps a strongly typed Schema[T] as AnyAdapter for Field builders.
func anyAdapterFromSchema[T any](s fmeaskema.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse:      func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		jsonSchema: s.JSONSchema,
		orig:       s,
	}
}

// Orig returns the original underlying Schema[T] used to create this adapter.
func (ad AnyAdapter) Orig() any { return ad.orig }

// Parse runs the wrapped schema and returns its value as any.
func (ad AnyAdapter) Parse(ctx context.Context, v any) (any, error) {
	if ad.parse == nil {
		return v, nil
	}
	return ad.parse(ctx, v)
}

// Validate runs Parse and discards the value.
func (ad AnyAdapter) Validate(ctx context.Context, v any) error {
	_, err := ad.Parse(ctx, v)
	return err
}

// JSONSchema returns the wrapped schema's projection.
func (ad AnyAdapter) JSONSchema() (*js.Schema, error) {
	if ad.jsonSchema == nil {
		return &js.Schema{}, nil
	}
	return ad.jsonSchema()
}

// Nullable wraps an AnyAdapter to accept JSON null. When the input value is
// nil, parsing succeeds and returns nil.
func Nullable(ad AnyAdapter) AnyAdapter {
	prevParse := ad.parse
	prevJSON := ad.jsonSchema
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		if prevParse == nil {
			return v, nil
		}
		return prevParse(ctx, v)
	}
	out.jsonSchema = func() (*js.Schema, error) {
		if prevJSON == nil {
			return &js.Schema{Nullable: true}, nil
		}
		s, err := prevJSON()
		if err != nil {
			return nil, err
		}
		s = s.Clone()
		s.Nullable = true
		return s, nil
	}
	return out
}

// Nullable enables fluent chaining: dsl.StringOf[T]().Nullable()
func (ad AnyAdapter) Nullable() AnyAdapter { return Nullable(ad) }

// Min sets a numeric minimum (inclusive) constraint at runtime and in JSON Schema.
// Non-numeric values are ignored by this guard (type errors are handled elsewhere).
func (ad AnyAdapter) Min(n float64) AnyAdapter {
	return ad.bound(func(v any) error { return minCheck(v, n) }, func(s *js.Schema) { s.Minimum = jsPtrFloat(n) })
}

// Max sets a numeric maximum (inclusive) constraint at runtime and in JSON Schema.
func (ad AnyAdapter) Max(n float64) AnyAdapter {
	return ad.bound(func(v any) error { return maxCheck(v, n) }, func(s *js.Schema) { s.Maximum = jsPtrFloat(n) })
}

func (ad AnyAdapter) bound(check func(any) error, annotate func(*js.Schema)) AnyAdapter {
	prevParse := ad.parse
	prevJSON := ad.jsonSchema
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		if prevParse != nil {
			val, err := prevParse(ctx, v)
			if err != nil {
				return nil, err
			}
			v = val
		}
		if err := check(v); err != nil {
			return nil, err
		}
		return v, nil
	}
	out.jsonSchema = func() (*js.Schema, error) {
		s := &js.Schema{}
		if prevJSON != nil {
			ps, err := prevJSON()
			if err != nil {
				return nil, err
			}
			s = ps.Clone()
		}
		annotate(s)
		if s.Type == "" {
			s.Type = "number"
		}
		return s, nil
	}
	return out
}

// ---- helpers ----
func jsPtrFloat(v float64) *float64 { return &v }

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(n).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(n).Uint()), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	}
	return 0, false
}

func minCheck(v any, min float64) error {
	if f, ok := asFloat(v); ok && f < min {
		return boundIssue(fmeaskema.CodeTooSmall, "minimum", min)
	}
	return nil
}

func maxCheck(v any, max float64) error {
	if f, ok := asFloat(v); ok && f > max {
		return boundIssue(fmeaskema.CodeTooBig, "maximum", max)
	}
	return nil
}

func boundIssue(code, param string, limit float64) error {
	return fmeaskema.Issues{fmeaskema.Issue{
		Path:    "/",
		Code:    code,
		Message: i18n.T(code, nil),
		Hint:    param + " is " + strconv.FormatFloat(limit, 'f', -1, 64),
		Params:  map[string]any{param: limit},
	}}
}

func typeIssue(hint string) error {
	return fmeaskema.Issues{fmeaskema.Issue{Path: "/", Code: fmeaskema.CodeInvalidType, Message: i18n.T(fmeaskema.CodeInvalidType, nil), Hint: hint}}
}
