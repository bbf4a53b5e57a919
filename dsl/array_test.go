package dsl_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/reoring/fmeaskema"
	g "github.com/reoring/fmeaskema/dsl"
)

func TestArray_AggregatesElementIssues(t *testing.T) {
	s := g.Array[int64](g.Int64().Range(1, 10))
	_, err := s.Parse(context.Background(), []any{json.Number("1"), json.Number("11"), "x", json.Number("0")})
	iss, _ := fmeaskema.AsIssues(err)
	if len(iss) != 3 {
		t.Fatalf("expected three issues, got %v", err)
	}
	want := []string{"/1", "/2", "/3"}
	for i, w := range want {
		if iss[i].Path != w {
			t.Fatalf("issue %d: want %s got %s", i, w, iss[i].Path)
		}
	}
}

func TestArray_FailFast(t *testing.T) {
	s := g.Array[int64](g.Int64())
	ctx := fmeaskema.WithFailFast(context.Background(), true)
	_, err := s.Parse(ctx, []any{"a", "b"})
	if iss, _ := fmeaskema.AsIssues(err); len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
}

func TestArray_MinMaxAndType(t *testing.T) {
	ctx := context.Background()
	s := g.Array[string](g.String()).Min(1).Max(2)
	if _, err := s.Parse(ctx, []any{}); code(err) != fmeaskema.CodeTooShort {
		t.Fatalf("expected too_short: %v", err)
	}
	if _, err := s.Parse(ctx, []any{"a", "b", "c"}); code(err) != fmeaskema.CodeTooLong {
		t.Fatalf("expected too_long: %v", err)
	}
	if _, err := s.Parse(ctx, map[string]any{}); code(err) != fmeaskema.CodeInvalidType {
		t.Fatalf("expected invalid_type: %v", err)
	}
	v, err := s.Parse(ctx, []any{"a"})
	if err != nil || len(v) != 1 {
		t.Fatalf("got %v %v", v, err)
	}
}

func TestMap_ValidatesValues(t *testing.T) {
	s := g.Map[int64](g.Int64())
	v, err := s.Parse(context.Background(), map[string]any{"uuid": json.Number("5")})
	if err != nil || v["uuid"] != 5 {
		t.Fatalf("got %v %v", v, err)
	}
	_, err = s.Parse(context.Background(), map[string]any{"a/b": "x"})
	iss, _ := fmeaskema.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/a~1b" {
		t.Fatalf("expected escaped path, got %v", err)
	}
}
