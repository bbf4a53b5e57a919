package fmeaskema

import (
	"context"

	js "github.com/reoring/fmeaskema/jsonschema"
)

// Schema turns an untyped input (the any-tree produced by a JSON decoder) into
// a validated T.
type Schema[T any] interface {
	// Parse transforms an unknown input into T (Coerce -> Normalize (Default) ->
	// Validate -> Refine). It returns an error when validation fails.
	Parse(ctx context.Context, v any) (T, error)

	// Validate runs the same checks as Parse and discards the value.
	Validate(ctx context.Context, v any) error

	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// Normalizer provides an optional hook to normalize typed values during the
// Normalize phase of parsing. If it is not implemented, the phase is skipped.
type Normalizer[T any] interface {
	Normalize(ctx context.Context, v T) (T, error)
}

// Refiner provides an optional hook at the end of parsing to perform
// cross-field validation. If it is not implemented, the phase is skipped.
type Refiner[T any] interface {
	Refine(ctx context.Context, v T) error
}

// SafeParse parses v into T, returning (zero, false) on validation error.
func SafeParse[T any](ctx context.Context, s Schema[T], v any) (T, bool) {
	val, err := s.Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, false
	}
	return val, true
}

// Is returns true if v conforms to the schema s.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	return s.Validate(ctx, v) == nil
}

// ---- Parse-time context options (exported for subpackages) ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
	_ctxKeyPath
	_ctxKeyWarningSink
)

// WithFailFast returns a child context that marks fail-fast parsing behavior.
// This is set by ParseFrom based on ParseOpt and consumed by schema implementations.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}

// WithPathSegment returns a child context whose current JSON Pointer is extended
// by seg. Container schemas call it before descending so that warnings raised
// deep in the tree carry their absolute location.
func WithPathSegment(ctx context.Context, seg string) context.Context {
	return context.WithValue(ctx, _ctxKeyPath, joinPointer(PathFrom(ctx), seg))
}

// PathFrom returns the JSON Pointer of the value currently being parsed ("" at the root).
func PathFrom(ctx context.Context) string {
	p, _ := ctx.Value(_ctxKeyPath).(string)
	return p
}

// WithWarningSink installs sink as the receiver of non-fatal warnings raised
// while parsing with ctx.
func WithWarningSink(ctx context.Context, sink WarningSink) context.Context {
	return context.WithValue(ctx, _ctxKeyWarningSink, sink)
}

// WarningSinkFrom returns the sink installed with WithWarningSink, if any.
func WarningSinkFrom(ctx context.Context) (WarningSink, bool) {
	s, ok := ctx.Value(_ctxKeyWarningSink).(WarningSink)
	return s, ok && s != nil
}
