package fmeaskema_test

import (
	"context"
	"testing"

	"github.com/reoring/fmeaskema"
	js "github.com/reoring/fmeaskema/jsonschema"
)

// minimalSchema is a stub Schema that echoes input when it's of type string.
type minimalSchema struct{}

func (minimalSchema) Parse(ctx context.Context, v any) (string, error) {
	s, _ := v.(string)
	if s == "" {
		return "", fmeaskema.Issues{fmeaskema.Issue{Code: fmeaskema.CodeInvalidType, Path: "/", Message: "expected string"}}
	}
	return s, nil
}
func (minimalSchema) Validate(ctx context.Context, v any) error {
	_, err := minimalSchema{}.Parse(ctx, v)
	return err
}
func (minimalSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "string"}, nil }

func TestParseFrom_DelegatesToSchema(t *testing.T) {
	got, err := fmeaskema.ParseFrom[string](context.Background(), minimalSchema{}, fmeaskema.JSONBytes([]byte(`"x"`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "x" {
		t.Fatalf("got %q", got)
	}
	if _, err := fmeaskema.ParseFrom[string](context.Background(), minimalSchema{}, fmeaskema.JSONBytes([]byte(`1`))); err == nil {
		t.Fatalf("expected error for non-string input")
	}
}

func TestParseFrom_InvalidJSON(t *testing.T) {
	_, err := fmeaskema.ParseFrom[string](context.Background(), minimalSchema{}, fmeaskema.JSONBytes([]byte(`{"a":`)))
	iss, ok := fmeaskema.AsIssues(err)
	if !ok || iss[0].Code != fmeaskema.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
}

func TestParseFrom_TrailingData(t *testing.T) {
	_, err := fmeaskema.ParseFrom[string](context.Background(), minimalSchema{}, fmeaskema.JSONBytes([]byte(`"a" "b"`)))
	iss, ok := fmeaskema.AsIssues(err)
	if !ok || !iss.HasCode(fmeaskema.CodeParseError) {
		t.Fatalf("expected parse_error for trailing data, got %v", err)
	}
}

func TestSafeParseAndIs(t *testing.T) {
	ctx := context.Background()
	if _, ok := fmeaskema.SafeParse[string](ctx, minimalSchema{}, 1); ok {
		t.Fatalf("SafeParse should fail")
	}
	if !fmeaskema.Is[string](ctx, minimalSchema{}, "ok") {
		t.Fatalf("Is should succeed")
	}
}

func TestIssues_ErrorSummary(t *testing.T) {
	iss := fmeaskema.Issues{
		{Path: "/a", Code: fmeaskema.CodeInvalidType},
		{Path: "/b", Code: fmeaskema.CodeUnknownKey},
		{Path: "/c", Code: fmeaskema.CodeTooShort},
		{Path: "/d", Code: fmeaskema.CodeTooLong},
	}
	if iss.Error() == "" {
		t.Fatalf("expected non-empty error summary")
	}
	if !iss.HasCode(fmeaskema.CodeTooLong) || iss.HasCode(fmeaskema.CodeRequired) {
		t.Fatalf("HasCode mismatch")
	}
}

func TestRebaseIssues(t *testing.T) {
	got := fmeaskema.RebaseIssues("/nodes/3", fmeaskema.Issues{{Path: "/"}, {Path: "/uuid"}, {Path: ""}})
	want := []string{"/nodes/3", "/nodes/3/uuid", "/nodes/3"}
	for i, w := range want {
		if got[i].Path != w {
			t.Fatalf("issue %d: want %s, got %s", i, w, got[i].Path)
		}
	}
}

func TestWithPathSegment_Escapes(t *testing.T) {
	ctx := fmeaskema.WithPathSegment(context.Background(), "a/b")
	ctx = fmeaskema.WithPathSegment(ctx, "0")
	if p := fmeaskema.PathFrom(ctx); p != "/a~1b/0" {
		t.Fatalf("unexpected path %q", p)
	}
}
