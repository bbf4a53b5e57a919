package dsl_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/reoring/fmeaskema"
	g "github.com/reoring/fmeaskema/dsl"
)

type shape interface{ kind() string }

type circle struct {
	Type   string `json:"type"`
	Radius int64  `json:"radius"`
}

func (circle) kind() string { return "circle" }

type square struct {
	Type string `json:"type"`
	Side int64  `json:"side"`
}

func (square) kind() string { return "square" }

func shapes() fmeaskema.Schema[shape] {
	c := g.MustBind[circle](g.Object().
		Field("type", g.StringOf[string]()).Required().
		Field("radius", g.SchemaOf[int64](g.Int64().Min(1))).Required())
	s := g.MustBind[square](g.Object().
		Field("type", g.StringOf[string]()).Required().
		Field("side", g.Int64Of()).Required())
	return g.TaggedUnion[shape]("type").Named("Shape").
		Case(g.Widen[shape](c), "circle", "round").
		Case(g.Widen[shape](s), "square").
		MustBuild()
}

func TestTaggedUnion_Dispatch(t *testing.T) {
	ctx := context.Background()
	u := shapes()
	v, err := u.Parse(ctx, map[string]any{"type": "circle", "radius": json.Number("2")})
	if err != nil || v.kind() != "circle" || v.(circle).Radius != 2 {
		t.Fatalf("circle: %#v %v", v, err)
	}
	v, err = u.Parse(ctx, map[string]any{"type": "round", "radius": json.Number("3")})
	if err != nil || v.(circle).Type != "round" {
		t.Fatalf("second tag of the same case: %#v %v", v, err)
	}
	v, err = u.Parse(ctx, map[string]any{"type": "square", "side": json.Number("4")})
	if err != nil || v.kind() != "square" {
		t.Fatalf("square: %#v %v", v, err)
	}
}

func TestTaggedUnion_Missing(t *testing.T) {
	_, err := shapes().Parse(context.Background(), map[string]any{"radius": json.Number("2")})
	iss, _ := fmeaskema.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != fmeaskema.CodeDiscriminatorMissing || iss[0].Path != "/type" {
		t.Fatalf("expected discriminator_missing at /type, got %v", err)
	}
}

func TestTaggedUnion_Unknown(t *testing.T) {
	_, err := shapes().Parse(context.Background(), map[string]any{"type": "hexagon"})
	iss, _ := fmeaskema.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != fmeaskema.CodeDiscriminatorUnknown {
		t.Fatalf("expected discriminator_unknown, got %v", err)
	}
	if iss[0].Params["type"] != "hexagon" {
		t.Fatalf("expected offending tag in params, got %v", iss[0].Params)
	}
}

func TestTaggedUnion_VariantFailureCarriesTag(t *testing.T) {
	_, err := shapes().Parse(context.Background(), map[string]any{"type": "circle", "radius": json.Number("0")})
	iss, _ := fmeaskema.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != fmeaskema.CodeTooSmall || iss[0].Path != "/radius" || iss[0].Params["type"] != "circle" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestTaggedUnion_DuplicateTag(t *testing.T) {
	c := g.Widen[shape](g.MustBind[circle](g.Object().Field("type", g.StringOf[string]()).Field("radius", g.Int64Of())))
	if _, err := g.TaggedUnion[shape]("type").Case(c, "circle").Case(c, "circle").Build(); err == nil {
		t.Fatalf("expected error for duplicate tag")
	}
}

func TestTaggedUnion_JSONSchema(t *testing.T) {
	js, err := shapes().JSONSchema()
	if err != nil {
		t.Fatalf("json schema: %v", err)
	}
	if len(js.OneOf) != 2 || js.Discriminator == nil || js.Discriminator.PropertyName != "type" {
		t.Fatalf("unexpected schema: %+v", js)
	}
}

func TestWiden_PanicsOnMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	g.Widen[shape, int64](g.Int64())
}
