package dsl

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/i18n"
	js "github.com/reoring/fmeaskema/jsonschema"
)

// ---- strings ----

// StringBuilder exposes chaining options for string schemas while implementing Schema[string].
type StringBuilder interface {
	fmeaskema.Schema[string]
	// Min requires at least n characters.
	Min(n int) StringBuilder
	// NonEmpty is Min(1).
	NonEmpty() StringBuilder
	// Format checks the value with a go-playground/validator tag (e.g. "http_url")
	// and exports name as the JSON Schema format.
	Format(name, tag string) StringBuilder
}

// String returns the minimal string schema implementation.
func String() StringBuilder { return stringSchema{minLen: -1} }

// URL accepts absolute http and https URLs.
func URL() StringBuilder { return String().Format("uri", "http_url") }

// StringOf returns an AnyAdapter for a string wire schema projected to domain type T.
func StringOf[T ~string]() AnyAdapter {
	return SchemaOf[T](stringAsSchema[T]{inner: stringSchema{minLen: -1}})
}

type stringSchema struct {
	minLen int
	format string
	tag    string
}

var _ fmeaskema.Schema[string] = stringSchema{}

// formats is shared by every schema; validator.Validate is safe for concurrent use.
var formats = validator.New(validator.WithRequiredStructEnabled())

func (s stringSchema) Min(n int) StringBuilder { s.minLen = n; return s }
func (s stringSchema) NonEmpty() StringBuilder { return s.Min(1) }
func (s stringSchema) Format(name, tag string) StringBuilder {
	s.format = name
	s.tag = tag
	return s
}

func (s stringSchema) Parse(ctx context.Context, v any) (string, error) {
	str, ok := v.(string)
	if !ok {
		return "", typeIssue("expected string")
	}
	if s.minLen >= 0 && len([]rune(str)) < s.minLen {
		return "", fmeaskema.Issues{{Path: "/", Code: fmeaskema.CodeTooShort, Message: i18n.T(fmeaskema.CodeTooShort, nil), Params: map[string]any{"minLength": s.minLen}}}
	}
	if s.tag != "" {
		if err := formats.Var(str, s.tag); err != nil {
			return "", fmeaskema.Issues{{Path: "/", Code: fmeaskema.CodeInvalidFormat, Message: i18n.T(fmeaskema.CodeInvalidFormat, nil), Hint: "expected " + s.format, Params: map[string]any{"format": s.format}, Cause: err}}
		}
	}
	ns, err := fmeaskema.ApplyNormalize[string](ctx, str, s)
	if err != nil {
		return "", err
	}
	if err := fmeaskema.ApplyRefine[string](ctx, ns, s); err != nil {
		return "", err
	}
	return ns, nil
}

func (s stringSchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

func (s stringSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string", Format: s.format}
	if s.minLen > 0 {
		n := s.minLen
		out.MinLength = &n
	}
	return out, nil
}

// stringAsSchema projects a string schema to a domain type T with underlying string.
type stringAsSchema[T ~string] struct{ inner fmeaskema.Schema[string] }

func (s stringAsSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	str, err := s.inner.Parse(ctx, v)
	return T(str), err
}
func (s stringAsSchema[T]) Validate(ctx context.Context, v any) error {
	return s.inner.Validate(ctx, v)
}
func (s stringAsSchema[T]) JSONSchema() (*js.Schema, error) { return s.inner.JSONSchema() }

// ---- bool ----

// Bool returns the minimal bool schema implementation.
func Bool() fmeaskema.Schema[bool] { return boolSchema{} }

// BoolOf returns an AnyAdapter for a bool wire schema.
func BoolOf() AnyAdapter { return SchemaOf[bool](boolSchema{}) }

type boolSchema struct{}

func (boolSchema) Parse(ctx context.Context, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, typeIssue("expected boolean")
	}
	return b, nil
}
func (boolSchema) Validate(ctx context.Context, v any) error {
	_, err := boolSchema{}.Parse(ctx, v)
	return err
}
func (boolSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil }

// ---- integers ----

// IntBuilder exposes inclusive range options for integer schemas.
type IntBuilder interface {
	fmeaskema.Schema[int64]
	Min(n int64) IntBuilder
	Max(n int64) IntBuilder
	Range(min, max int64) IntBuilder
}

// Int64 returns an integer schema. JSON numbers must be integral (5 and 5.0
// are accepted, 5.5 is not); Go integer kinds are accepted for inputs that did
// not come from JSON (e.g. YAML documents).
func Int64() IntBuilder { return intSchema{} }

// Int64Of adapts Int64 for Field builders.
func Int64Of() AnyAdapter { return SchemaOf[int64](intSchema{}) }

// IntRangeOf adapts Int64().Range(min, max) for Field builders.
func IntRangeOf(min, max int64) AnyAdapter { return SchemaOf[int64](Int64().Range(min, max)) }

type intSchema struct {
	min, max       int64
	hasMin, hasMax bool
}

func (s intSchema) Min(n int64) IntBuilder { s.min, s.hasMin = n, true; return s }
func (s intSchema) Max(n int64) IntBuilder { s.max, s.hasMax = n, true; return s }
func (s intSchema) Range(min, max int64) IntBuilder {
	return s.Min(min).Max(max)
}

func (s intSchema) Parse(ctx context.Context, v any) (int64, error) {
	n, ok := ToInt64(v)
	if !ok {
		return 0, typeIssue("expected integer")
	}
	if s.hasMin && n < s.min {
		return 0, boundIssue(fmeaskema.CodeTooSmall, "minimum", float64(s.min))
	}
	if s.hasMax && n > s.max {
		return 0, boundIssue(fmeaskema.CodeTooBig, "maximum", float64(s.max))
	}
	return n, nil
}

func (s intSchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

func (s intSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "integer"}
	if s.hasMin {
		out.Minimum = jsPtrFloat(float64(s.min))
	}
	if s.hasMax {
		out.Maximum = jsPtrFloat(float64(s.max))
	}
	return out, nil
}

// ToInt64 reports whether v is an integral number and returns it. Booleans
// and strings are never integers.
func ToInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(n)
	case float32:
		return floatToInt(float64(n))
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// ---- enumerations ----

// IntEnum accepts exactly the listed integer literals.
func IntEnum[T ~int | ~int64](allowed ...T) fmeaskema.Schema[T] {
	return intEnumSchema[T]{allowed: slices.Clone(allowed)}
}

// IntEnumOf adapts IntEnum for Field builders.
func IntEnumOf[T ~int | ~int64](allowed ...T) AnyAdapter { return SchemaOf[T](IntEnum(allowed...)) }

type intEnumSchema[T ~int | ~int64] struct{ allowed []T }

func (s intEnumSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	n, ok := ToInt64(v)
	if !ok {
		return 0, typeIssue("expected integer")
	}
	if !slices.Contains(s.allowed, T(n)) || int64(T(n)) != n {
		return 0, enumIssue(fmt.Sprint(n), s.values())
	}
	return T(n), nil
}

func (s intEnumSchema[T]) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

func (s intEnumSchema[T]) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "integer", Enum: s.values()}, nil
}

func (s intEnumSchema[T]) values() []any {
	out := make([]any, len(s.allowed))
	for i, a := range s.allowed {
		out[i] = int64(a)
	}
	return out
}

// StringEnum accepts exactly the listed string literals.
func StringEnum[T ~string](allowed ...T) fmeaskema.Schema[T] {
	return stringEnumSchema[T]{allowed: slices.Clone(allowed)}
}

// StringEnumOf adapts StringEnum for Field builders.
func StringEnumOf[T ~string](allowed ...T) AnyAdapter { return SchemaOf[T](StringEnum(allowed...)) }

type stringEnumSchema[T ~string] struct{ allowed []T }

func (s stringEnumSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	str, ok := v.(string)
	if !ok {
		return "", typeIssue("expected string")
	}
	if !slices.Contains(s.allowed, T(str)) {
		return "", enumIssue(str, s.values())
	}
	return T(str), nil
}

func (s stringEnumSchema[T]) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

func (s stringEnumSchema[T]) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Enum: s.values()}, nil
}

func (s stringEnumSchema[T]) values() []any {
	out := make([]any, len(s.allowed))
	for i, a := range s.allowed {
		out[i] = string(a)
	}
	return out
}

func enumIssue(got string, allowed []any) error {
	return fmeaskema.Issues{fmeaskema.Issue{
		Path:    "/",
		Code:    fmeaskema.CodeInvalidEnum,
		Message: i18n.T(fmeaskema.CodeInvalidEnum, nil),
		Hint:    fmt.Sprintf("got %s, allowed %v", got, allowed),
		Params:  map[string]any{"got": got, "allowed": allowed},
	}}
}

// ---- loose values ----

// AnyValue accepts any JSON value unchanged.
func AnyValue() fmeaskema.Schema[any] { return anySchema{} }

type anySchema struct{}

func (anySchema) Parse(ctx context.Context, v any) (any, error) { return v, nil }
func (anySchema) Validate(ctx context.Context, v any) error     { return nil }
func (anySchema) JSONSchema() (*js.Schema, error)               { return &js.Schema{}, nil }
