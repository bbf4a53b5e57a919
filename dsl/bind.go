package dsl

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/i18n"
	js "github.com/reoring/fmeaskema/jsonschema"
)

// Bind builds an object schema and binds it to struct type T (free function for Go version compatibility).
//
// Struct fields are matched to DSL keys with fmeaskema.ResolveStructKey;
// fields of embedded structs are promoted. Pointer fields are allocated when a
// value is present and stay nil otherwise. Under UnknownPassthrough, T must
// carry a map[string]any field tagged fmeaskema:"extras" that receives the
// undeclared keys.
func Bind[T any](b *objectBuilder) (fmeaskema.Schema[T], error) {
	os, err := b.build()
	if err != nil {
		return nil, err
	}
	return newTypedObjectSchema[T](os)
}

// MustBind is like Bind but panics on error (free function for Go version compatibility).
func MustBind[T any](b *objectBuilder) fmeaskema.Schema[T] {
	s, err := Bind[T](b)
	if err != nil {
		panic(err)
	}
	return s
}

// typedObjectSchema adapts an objectSchema to a typed struct T using key resolution.
type typedObjectSchema[T any] struct {
	inner      *objectSchema
	t          reflect.Type
	ptr        bool
	fieldByKey map[string][]int // DSL key -> struct field index path
	extras     []int
}

var extrasType = reflect.TypeOf(map[string]any(nil))

func newTypedObjectSchema[T any](os *objectSchema) (fmeaskema.Schema[T], error) {
	rt := reflect.TypeFor[T]()
	ptr := false
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
		ptr = true
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("dsl.Bind: %s is not a struct", rt)
	}
	idxByName := map[string][]int{}
	var extras []int
	collectStructKeys(rt, nil, idxByName, &extras)

	fm := make(map[string][]int, len(os.fields))
	for _, k := range os.sortedKeys {
		idx, ok := idxByName[k]
		if !ok {
			return nil, fmt.Errorf("dsl.Bind: %s has no field for key %q", rt, k)
		}
		fm[k] = idx
	}
	if extras != nil && rt.FieldByIndex(extras).Type != extrasType {
		return nil, fmt.Errorf("dsl.Bind: extras field of %s must be map[string]any", rt)
	}
	if os.unknownPolicy == fmeaskema.UnknownPassthrough && extras == nil {
		return nil, fmt.Errorf("dsl.Bind: %s needs a fmeaskema:\"extras\" field to keep undeclared keys", rt)
	}
	return &typedObjectSchema[T]{inner: os, t: rt, ptr: ptr, fieldByKey: fm, extras: extras}, nil
}

// collectStructKeys walks exported fields, promoting untagged embedded structs.
// Outer fields shadow promoted ones.
func collectStructKeys(rt reflect.Type, prefix []int, out map[string][]int, extras *[]int) {
	var embedded []reflect.StructField
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		idx := append(append([]int(nil), prefix...), i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Tag.Get("json") == "" {
			sf.Index = idx
			embedded = append(embedded, sf)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if fmeaskema.IsExtrasField(sf) {
			if *extras == nil {
				*extras = idx
			}
			continue
		}
		name := fmeaskema.ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		if _, seen := out[name]; !seen {
			out[name] = idx
		}
	}
	for _, sf := range embedded {
		collectStructKeys(sf.Type, sf.Index, out, extras)
	}
}

// Parse maps wire -> map via inner, then into struct fields by mapping.
func (s *typedObjectSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var zero T
	m, err := s.inner.Parse(ctx, v)
	if err != nil {
		return zero, err
	}
	rp := reflect.New(s.t)
	rv := rp.Elem()
	for key, idx := range s.fieldByKey {
		val, ok := m[key]
		if !ok || val == nil {
			continue
		}
		if err := assign(rv.FieldByIndex(idx), val); err != nil {
			return zero, fmeaskema.Issues{fmeaskema.Issue{
				Path:    "/" + fmeaskema.EscapePointerToken(key),
				Code:    fmeaskema.CodeInvalidType,
				Message: i18n.T(fmeaskema.CodeInvalidType, nil),
				Hint:    err.Error(),
			}}
		}
	}
	if s.extras != nil {
		var rest map[string]any
		for k, val := range m {
			if _, declared := s.fieldByKey[k]; declared {
				continue
			}
			if rest == nil {
				rest = map[string]any{}
			}
			rest[k] = val
		}
		if rest != nil {
			rv.FieldByIndex(s.extras).Set(reflect.ValueOf(rest))
		}
	}
	if s.ptr {
		return rp.Interface().(T), nil
	}
	return rv.Interface().(T), nil
}

// assign stores val into fv, allocating pointers and converting between
// kinds of the same family (ints to ints, strings to named strings).
func assign(fv reflect.Value, val any) error {
	vv := reflect.ValueOf(val)
	ft := fv.Type()
	switch {
	case vv.Type().AssignableTo(ft):
		fv.Set(vv)
		return nil
	case ft.Kind() == reflect.Pointer:
		elem := reflect.New(ft.Elem())
		if err := assign(elem.Elem(), val); err != nil {
			return err
		}
		fv.Set(elem)
		return nil
	case sameFamily(vv.Kind(), ft.Kind()) && vv.Type().ConvertibleTo(ft):
		fv.Set(vv.Convert(ft))
		return nil
	case vv.Kind() == reflect.Slice && ft.Kind() == reflect.Slice:
		out := reflect.MakeSlice(ft, vv.Len(), vv.Len())
		for i := 0; i < vv.Len(); i++ {
			if err := assign(out.Index(i), vv.Index(i).Interface()); err != nil {
				return err
			}
		}
		fv.Set(out)
		return nil
	}
	return fmt.Errorf("cannot store %s in %s", vv.Type(), ft)
}

func sameFamily(a, b reflect.Kind) bool {
	return family(a) != 0 && family(a) == family(b)
}

func family(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return 1
	case reflect.Float32, reflect.Float64:
		return 2
	case reflect.String:
		return 3
	case reflect.Bool:
		return 4
	}
	return 0
}

func (s *typedObjectSchema[T]) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(fmeaskema.WithWarningSink(ctx, func(context.Context, fmeaskema.Warning) {}), v)
	return err
}

func (s *typedObjectSchema[T]) JSONSchema() (*js.Schema, error) { return s.inner.JSONSchema() }

// Name returns the model name given with Named.
func (s *typedObjectSchema[T]) Name() string { return s.inner.name }

// AcceptedKeys returns the sorted accepted-key set of the bound object.
func (s *typedObjectSchema[T]) AcceptedKeys() []string { return s.inner.AcceptedKeys() }

// Keys returns the declared canonical keys in sorted order.
func (s *typedObjectSchema[T]) Keys() []string {
	out := make([]string, 0, len(s.fieldByKey))
	for k := range s.fieldByKey {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
