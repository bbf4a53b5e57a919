package fmeaskema_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/reoring/fmeaskema"
	js "github.com/reoring/fmeaskema/jsonschema"
)

// noop schema for tests
type noopSchema struct{}

func (noopSchema) Parse(ctx context.Context, v any) (struct{}, error) { return struct{}{}, nil }
func (noopSchema) Validate(ctx context.Context, v any) error          { return nil }
func (noopSchema) JSONSchema() (*js.Schema, error)                    { return &js.Schema{}, nil }

func TestStreamParse_DuplicateKey_Error(t *testing.T) {
	jsb := []byte(`{"a":1,"a":2}`)
	opt := fmeaskema.ParseOpt{Strictness: fmeaskema.Strictness{OnDuplicateKey: fmeaskema.Error}}
	_, err := fmeaskema.StreamParse(context.Background(), noopSchema{}, bytes.NewReader(jsb), opt)
	if err == nil {
		t.Fatalf("expected error for duplicate key")
	}
	iss, ok := fmeaskema.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues error, got: %v", err)
	}
	if len(iss) == 0 || iss[0].Code != fmeaskema.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key issue, got: %v", iss)
	}
	if iss[0].Path != "/a" {
		t.Fatalf("expected path=/a, got: %s", iss[0].Path)
	}
}

func TestStreamParse_DuplicateKey_NestedPath(t *testing.T) {
	jsb := []byte(`[{"a":1,"a":2}]`)
	opt := fmeaskema.ParseOpt{Strictness: fmeaskema.Strictness{OnDuplicateKey: fmeaskema.Error}}
	_, err := fmeaskema.StreamParse(context.Background(), noopSchema{}, bytes.NewReader(jsb), opt)
	iss, ok := fmeaskema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got: %v", err)
	}
	if iss[0].Path != "/0/a" {
		t.Fatalf("expected path=/0/a, got: %s", iss[0].Path)
	}
}

func TestStreamParse_DuplicateKey_IgnoredByDefault(t *testing.T) {
	_, err := fmeaskema.StreamParse(context.Background(), noopSchema{}, bytes.NewReader([]byte(`{"a":1,"a":2}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStreamParse_MaxDepth_Exceeded(t *testing.T) {
	// depth = 3 for { a: { b: { c: 1 } } }
	jsb := []byte(`{"a":{"b":{"c":1}}}`)
	opt := fmeaskema.ParseOpt{MaxDepth: 2}
	_, err := fmeaskema.StreamParse(context.Background(), noopSchema{}, bytes.NewReader(jsb), opt)
	if err == nil {
		t.Fatalf("expected error for max depth exceeded")
	}
	if iss, ok := fmeaskema.AsIssues(err); ok {
		if len(iss) == 0 || iss[0].Path != "/a/b" {
			t.Fatalf("expected path=/a/b for max depth, got: %v", iss)
		}
	}
}

func TestStreamParse_MaxBytes_Exceeded(t *testing.T) {
	data := append([]byte("{}"), bytes.Repeat([]byte("x"), 1024)...)
	opt := fmeaskema.ParseOpt{MaxBytes: 2}
	_, err := fmeaskema.StreamParse(context.Background(), noopSchema{}, bytes.NewReader(data), opt)
	iss, ok := fmeaskema.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != fmeaskema.CodeTruncated {
		t.Fatalf("expected truncated issue, got: %v", err)
	}
}
