package dsl

import (
	"context"
	"sort"
	"strings"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/i18n"
	js "github.com/reoring/fmeaskema/jsonschema"
)

type objectSchema struct {
	name          string
	fields        map[string]AnyAdapter
	aliases       map[string][][]string
	descriptions  map[string]string
	required      map[string]struct{}
	accepted      map[string]struct{}
	unknownPolicy fmeaskema.UnknownPolicy
	before        []objRefine
	refines       []objRefine
	sortedKeys    []string
}

// Ensure objectSchema implements fmeaskema.Schema[map[string]any]
var _ fmeaskema.Schema[map[string]any] = (*objectSchema)(nil)

// Name returns the model name given with Named.
func (o *objectSchema) Name() string { return o.name }

// AcceptedKeys returns the sorted set of wire keys the object accepts:
// canonical names, aliases and the first segment of every alias path.
func (o *objectSchema) AcceptedKeys() []string {
	out := make([]string, 0, len(o.accepted))
	for k := range o.accepted {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// lookup resolves the wire location of field k: the canonical name first,
// then aliases in declared order. It returns the JSON Pointer (relative to
// the record) of the value found.
func (o *objectSchema) lookup(src map[string]any, k string) (any, string, bool) {
	if v, ok := src[k]; ok {
		return v, "/" + fmeaskema.EscapePointerToken(k), true
	}
	for _, path := range o.aliases[k] {
		var cur any = src
		ptr := ""
		found := true
		for _, seg := range path {
			m, ok := cur.(map[string]any)
			if !ok {
				found = false
				break
			}
			if cur, ok = m[seg]; !ok {
				found = false
				break
			}
			ptr += "/" + fmeaskema.EscapePointerToken(seg)
		}
		if found {
			return cur, ptr, true
		}
	}
	return nil, "", false
}

// handleExistingField parses a present field value found at ptr.
func (o *objectSchema) handleExistingField(ctx context.Context, ptr string, ad AnyAdapter, val any) (any, fmeaskema.Issues) {
	fctx := ctx
	for _, seg := range strings.Split(ptr[1:], "/") {
		fctx = fmeaskema.WithPathSegment(fctx, unescapeToken(seg))
	}
	parsed, err := ad.Parse(fctx, val)
	if err != nil {
		return nil, fmeaskema.IssuesFromErr(ptr, err)
	}
	return parsed, nil
}

// handleMissingField applies a default when available; returns handled=true if default path executed.
func (o *objectSchema) handleMissingField(ctx context.Context, k string, ad AnyAdapter) (any, fmeaskema.Issues, bool) {
	if ad.applyDefault == nil {
		return nil, nil, false
	}
	dv, err := ad.applyDefault(fmeaskema.WithPathSegment(ctx, k))
	if err != nil {
		return nil, fmeaskema.IssuesFromErr("/"+fmeaskema.EscapePointerToken(k), err), true
	}
	return dv, nil, true
}

// collectKnown parses known fields and applies defaults.
func (o *objectSchema) collectKnown(ctx context.Context, src map[string]any) (map[string]any, fmeaskema.Issues) {
	out := make(map[string]any, len(src))
	var iss fmeaskema.Issues
	for _, k := range o.sortedKeys {
		ad := o.fields[k]
		if val, ptr, exists := o.lookup(src, k); exists {
			parsed, i2 := o.handleExistingField(ctx, ptr, ad, val)
			if len(i2) > 0 {
				iss = fmeaskema.AppendIssues(iss, i2...)
				if fmeaskema.IsFailFast(ctx) {
					return out, iss
				}
				continue
			}
			out[k] = parsed
			continue
		}
		// missing: apply default if provided; otherwise enforce required
		if dv, i2, handled := o.handleMissingField(ctx, k, ad); handled {
			if len(i2) > 0 {
				iss = fmeaskema.AppendIssues(iss, i2...)
				if fmeaskema.IsFailFast(ctx) {
					return out, iss
				}
			} else {
				out[k] = dv
			}
			continue
		}
		if _, req := o.required[k]; req {
			iss = fmeaskema.AppendIssues(iss, fmeaskema.Issue{
				Path:    "/" + fmeaskema.EscapePointerToken(k),
				Code:    fmeaskema.CodeRequired,
				Message: i18n.T(fmeaskema.CodeRequired, nil),
				Hint:    "required property missing",
				Params:  map[string]any{"field": k},
			})
			if fmeaskema.IsFailFast(ctx) {
				return out, iss
			}
		}
	}
	return out, iss
}

// unknownKeys returns the sorted keys of src outside the accepted-key set.
func (o *objectSchema) unknownKeys(src map[string]any) []string {
	var uks []string
	for k := range src {
		if _, ok := o.accepted[k]; !ok {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	return uks
}

// collectUnknown processes unknown keys according to unknownPolicy and may write into out for passthrough.
func (o *objectSchema) collectUnknown(ctx context.Context, src map[string]any, out map[string]any) fmeaskema.Issues {
	uks := o.unknownKeys(src)
	if len(uks) == 0 {
		return nil
	}
	var iss fmeaskema.Issues
	switch o.unknownPolicy {
	case fmeaskema.UnknownStrict:
		for _, k := range uks {
			iss = fmeaskema.AppendIssues(iss, fmeaskema.Issue{Path: "/" + fmeaskema.EscapePointerToken(k), Code: fmeaskema.CodeUnknownKey, Message: i18n.T(fmeaskema.CodeUnknownKey, nil)})
		}
	case fmeaskema.UnknownStrip:
		// drop
	case fmeaskema.UnknownWarn:
		fmeaskema.EmitWarning(ctx, fmeaskema.Warning{Model: o.name, Path: fmeaskema.PathFrom(ctx), Keys: uks})
	case fmeaskema.UnknownPassthrough:
		for _, k := range uks {
			out[k] = src[k]
		}
	}
	return iss
}

func (o *objectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, typeIssue("expected object")
	}
	if err := runHooks(ctx, o.before, src); err != nil {
		return nil, err
	}
	out, iss := o.collectKnown(ctx, src)
	if fmeaskema.IsFailFast(ctx) && len(iss) > 0 {
		return nil, iss
	}
	if issUnknown := o.collectUnknown(ctx, src, out); len(issUnknown) > 0 {
		iss = fmeaskema.AppendIssues(iss, issUnknown...)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	nn, err := fmeaskema.ApplyNormalize[map[string]any](ctx, out, o)
	if err != nil {
		return nil, err
	}
	if err := fmeaskema.ApplyRefine[map[string]any](ctx, nn, o); err != nil {
		return nil, err
	}
	return nn, nil
}

func (o *objectSchema) Validate(ctx context.Context, v any) error {
	_, err := o.Parse(fmeaskema.WithWarningSink(ctx, func(context.Context, fmeaskema.Warning) {}), v)
	return err
}

func (o *objectSchema) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(o.fields))
	for k, ad := range o.fields {
		ps, err := ad.JSONSchema()
		if err != nil {
			return nil, err
		}
		if d := o.descriptions[k]; d != "" {
			ps = ps.Clone()
			ps.Description = d
		}
		props[k] = ps
	}
	// Required list (sorted for deterministic output)
	req := make([]string, 0, len(o.required))
	for k := range o.required {
		req = append(req, k)
	}
	sort.Strings(req)
	var additional any
	switch o.unknownPolicy {
	case fmeaskema.UnknownStrict:
		additional = false
	default:
		// strip, warn and passthrough all accept undeclared keys on the wire
		additional = true
	}
	return &js.Schema{Title: o.name, Type: "object", Properties: props, Required: req, AdditionalProperties: additional}, nil
}

// Refine implements fmeaskema.Refiner[map[string]any] using builder-registered hooks.
func (o *objectSchema) Refine(ctx context.Context, v map[string]any) error {
	return runHooks(ctx, o.refines, v)
}

func runHooks(ctx context.Context, hooks []objRefine, v map[string]any) error {
	var iss fmeaskema.Issues
	for _, r := range hooks {
		if err := r.fn(ctx, v); err != nil {
			if i2, ok := fmeaskema.AsIssues(err); ok {
				for _, it := range i2 {
					if it.Rule == "" {
						it.Rule = r.name
					}
					iss = fmeaskema.AppendIssues(iss, it)
				}
			} else {
				iss = fmeaskema.AppendIssues(iss, fmeaskema.Issue{Path: "/", Code: fmeaskema.CodeCustom, Message: err.Error(), Cause: err, Rule: r.name})
			}
			if fmeaskema.IsFailFast(ctx) {
				return iss
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

type objRefine struct {
	name string
	fn   func(context.Context, map[string]any) error
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

func unescapeToken(s string) string { return pointerUnescaper.Replace(s) }
