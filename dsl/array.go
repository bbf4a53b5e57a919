package dsl

import (
	"context"
	"strconv"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/i18n"
	js "github.com/reoring/fmeaskema/jsonschema"
)

// ArrayBuilder exposes chaining methods for array schemas while implementing Schema[[]E].
type ArrayBuilder[E any] interface {
	fmeaskema.Schema[[]E]
	Min(n int) ArrayBuilder[E]
	Max(n int) ArrayBuilder[E]
}

// Array returns an array schema with the given element schema. Element
// failures are aggregated across the whole array unless fail-fast is set.
func Array[E any](elem fmeaskema.Schema[E]) ArrayBuilder[E] {
	return &ArraySchema[E]{elem: elem, minLen: -1, maxLen: -1}
}

type ArraySchema[E any] struct {
	elem   fmeaskema.Schema[E]
	minLen int
	maxLen int
}

// ArrayOf adapts Array[E] to AnyAdapter for use in object builders.
func ArrayOf[E any](elem fmeaskema.Schema[E]) AnyAdapter {
	return anyAdapterFromSchema[[]E](Array[E](elem))
}

// Min sets the minimum length.
func (a *ArraySchema[E]) Min(n int) ArrayBuilder[E] { c := *a; c.minLen = n; return &c }

// Max sets the maximum length.
func (a *ArraySchema[E]) Max(n int) ArrayBuilder[E] { c := *a; c.maxLen = n; return &c }

func (a *ArraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	src, ok := v.([]any)
	if !ok {
		return nil, typeIssue("expected array")
	}
	if err := a.checkLen(len(src)); err != nil {
		return nil, err
	}
	res := make([]E, 0, len(src))
	var iss fmeaskema.Issues
	for i := range src {
		idx := strconv.Itoa(i)
		ev, err := a.elem.Parse(fmeaskema.WithPathSegment(ctx, idx), src[i])
		if err != nil {
			iss = fmeaskema.AppendIssues(iss, fmeaskema.IssuesFromErr("/"+idx, err)...)
			if fmeaskema.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		res = append(res, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	nn, err := fmeaskema.ApplyNormalize[[]E](ctx, res, a)
	if err != nil {
		return nil, err
	}
	if err := fmeaskema.ApplyRefine[[]E](ctx, nn, a); err != nil {
		return nil, err
	}
	return nn, nil
}

func (a *ArraySchema[E]) checkLen(n int) error {
	if a.minLen >= 0 && n < a.minLen {
		return fmeaskema.Issues{fmeaskema.Issue{Path: "/", Code: fmeaskema.CodeTooShort, Message: i18n.T(fmeaskema.CodeTooShort, nil), Hint: "array is shorter than min", Params: map[string]any{"minItems": a.minLen}}}
	}
	if a.maxLen >= 0 && n > a.maxLen {
		return fmeaskema.Issues{fmeaskema.Issue{Path: "/", Code: fmeaskema.CodeTooLong, Message: i18n.T(fmeaskema.CodeTooLong, nil), Hint: "array is longer than max", Params: map[string]any{"maxItems": a.maxLen}}}
	}
	return nil
}

func (a *ArraySchema[E]) Validate(ctx context.Context, v any) error {
	_, err := a.Parse(fmeaskema.WithWarningSink(ctx, func(context.Context, fmeaskema.Warning) {}), v)
	return err
}

func (a *ArraySchema[E]) JSONSchema() (*js.Schema, error) {
	es, err := a.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	s := &js.Schema{Type: "array", Items: es}
	if a.minLen >= 0 {
		n := a.minLen
		s.MinItems = &n
	}
	if a.maxLen >= 0 {
		n := a.maxLen
		s.MaxItems = &n
	}
	return s, nil
}
