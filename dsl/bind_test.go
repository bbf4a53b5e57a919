package dsl_test

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/reoring/fmeaskema"
	g "github.com/reoring/fmeaskema/dsl"
)

type header struct {
	UUID     int64  `json:"uuid"`
	ParentID int64  `json:"parentId"`
	Label    string `json:"label"`
}

type severity int

type payload struct {
	Severity *severity      `json:"severity,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Rest     map[string]any `json:"-" fmeaskema:"extras"`
}

type record struct {
	header
	Extra payload `json:"extra"`
}

func payloadSchema() fmeaskema.Schema[payload] {
	return g.MustBind[payload](g.Object().
		Field("severity", g.IntEnumOf[severity](1, 2, 3).Nullable()).
		Field("tags", g.ArrayOf[string](g.String())).
		UnknownPassthrough())
}

func recordSchema() fmeaskema.Schema[record] {
	return g.MustBind[record](g.Object().Named("Record").
		Field("uuid", g.Int64Of()).Alias("id").Required().
		Field("parentId", g.Int64Of()).Required().
		Field("label", g.StringOf[string]()).Required().
		Field("extra", g.SchemaOf[payload](payloadSchema())).Default(map[string]any{}).
		UnknownWarn())
}

func TestBind_EmbeddedPointersAndExtras(t *testing.T) {
	in := map[string]any{
		"id":       json.Number("12"),
		"parentId": json.Number("-1"),
		"label":    "l",
		"extra": map[string]any{
			"severity": json.Number("2"),
			"tags":     []any{"a", "b"},
			"owner":    "qa",
		},
	}
	r, err := recordSchema().Parse(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r.UUID != 12 || r.ParentID != -1 || r.Label != "l" {
		t.Fatalf("header not bound: %+v", r.header)
	}
	if r.Extra.Severity == nil || *r.Extra.Severity != 2 {
		t.Fatalf("pointer enum not bound: %+v", r.Extra)
	}
	if !reflect.DeepEqual(r.Extra.Tags, []string{"a", "b"}) {
		t.Fatalf("slice not bound: %+v", r.Extra.Tags)
	}
	if !reflect.DeepEqual(r.Extra.Rest, map[string]any{"owner": "qa"}) {
		t.Fatalf("extras not kept: %+v", r.Extra.Rest)
	}
}

func TestBind_OptionalAbsentStaysNil(t *testing.T) {
	r, err := recordSchema().Parse(context.Background(), map[string]any{
		"uuid": json.Number("1"), "parentId": json.Number("0"), "label": "x",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r.Extra.Severity != nil || r.Extra.Tags != nil || r.Extra.Rest != nil {
		t.Fatalf("expected zero extra, got %+v", r.Extra)
	}
}

func TestBind_NullOptional(t *testing.T) {
	p, err := payloadSchema().Parse(context.Background(), map[string]any{"severity": nil})
	if err != nil || p.Severity != nil {
		t.Fatalf("null should leave the pointer nil: %+v %v", p, err)
	}
}

func TestBind_NestedIssuePath(t *testing.T) {
	_, err := recordSchema().Parse(context.Background(), map[string]any{
		"uuid": json.Number("1"), "parentId": json.Number("0"), "label": "x",
		"extra": map[string]any{"severity": json.Number("9")},
	})
	iss, _ := fmeaskema.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/extra/severity" || iss[0].Code != fmeaskema.CodeInvalidEnum {
		t.Fatalf("expected invalid_enum at /extra/severity, got %v", err)
	}
}

type link struct {
	FromID int64 `json:"from" fmeaskema:"name=fromId"`
	ToID   int64 `json:"to" fmeaskema:"name=toId"`
}

func TestBind_NameTagOverridesJSON(t *testing.T) {
	s := g.MustBind[link](g.Object().
		Field("fromId", g.Int64Of()).Alias("from").Required().
		Field("toId", g.Int64Of()).Alias("to").Required())
	l, err := s.Parse(context.Background(), map[string]any{"from": json.Number("3"), "to": json.Number("4")})
	if err != nil || l.FromID != 3 || l.ToID != 4 {
		t.Fatalf("got %+v %v", l, err)
	}
}

func TestBind_Errors(t *testing.T) {
	if _, err := g.Bind[link](g.Object().Field("missing", g.Int64Of())); err == nil {
		t.Fatalf("expected error for key without struct field")
	}
	if _, err := g.Bind[link](g.Object().Field("fromId", g.Int64Of()).UnknownPassthrough()); err == nil {
		t.Fatalf("expected error for passthrough without extras field")
	}
	if _, err := g.Bind[int](g.Object()); err == nil {
		t.Fatalf("expected error for non-struct")
	}
}

func TestBind_PointerTarget(t *testing.T) {
	s := g.MustBind[*link](g.Object().
		Field("fromId", g.Int64Of()).Alias("from").
		Field("toId", g.Int64Of()).Alias("to"))
	l, err := s.Parse(context.Background(), map[string]any{"from": json.Number("1")})
	if err != nil || l == nil || l.FromID != 1 {
		t.Fatalf("got %+v %v", l, err)
	}
}
