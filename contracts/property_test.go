package contracts_test

import (
	"context"
	"reflect"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/contracts"
)

func notIn(keys ...string) func(string) bool {
	return func(s string) bool {
		for _, k := range keys {
			if s == k {
				return false
			}
		}
		return true
	}
}

// TestContractProperties checks the behaviours that must hold for any input
// shape, not only the fixtures above.
func TestContractProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	ctx := context.Background()
	v := contracts.NewValidator(contracts.Options{})

	// Property 1: an undeclared top-level key is dropped and reported exactly once
	properties.Property("unknown key warns and is stripped", prop.ForAll(
		func(key, session string) bool {
			body, _ := json.Marshal(map[string]any{"sessionId": session, key: 1})
			res, err := contracts.Validate(ctx, v, contracts.SessionModel, body)
			if err != nil || res.Value.SessionID != session {
				return false
			}
			return reflect.DeepEqual(res.Warnings, []fmeaskema.Warning{
				{Model: "SessionableRequest", Path: "/", Keys: []string{key}},
			})
		},
		gen.Identifier().SuchThat(notIn("sessionId", "documentIds")),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
	))

	// Property 2: undeclared extra keys survive a parse and encode round trip
	properties.Property("extra passthrough round trips", prop.ForAll(
		func(key, val string) bool {
			body, _ := json.Marshal(map[string]any{
				"uuid": 2, "parentId": 1, "nodeType": "failure", "description": "d",
				"extra": map[string]any{"severity": 5, key: val},
			})
			res, err := contracts.Validate(ctx, v, contracts.DFMEANodeModel, body)
			if err != nil || len(res.Warnings) != 0 {
				return false
			}
			out, err := contracts.Encode(ctx, contracts.DFMEANodeModel, res.Value)
			if err != nil {
				return false
			}
			back, err := contracts.DFMEANodeModel.ParseJSON(ctx, out)
			if err != nil {
				return false
			}
			f, ok := back.(contracts.DFMEAFailureNode)
			return ok && f.Extra.Rest[key] == val && *f.Extra.Severity == 5
		},
		gen.Identifier().SuchThat(notIn("failureType", "severity", "occurrence")),
		gen.AlphaString(),
	))

	// Property 3: a detection rating is accepted exactly when it is within 1..10
	properties.Property("detection rating range", prop.ForAll(
		func(detection, category int) bool {
			body, _ := json.Marshal(map[string]any{
				"uuid": 9, "parentId": 1, "nodeType": "action", "description": "a",
				"extra": map[string]any{"category": category, "detection": detection},
			})
			_, err := contracts.Validate(ctx, v, contracts.DFMEANodeModel, body)
			want := detection >= 1 && detection <= 10
			return (err == nil) == want
		},
		gen.IntRange(-20, 30),
		gen.IntRange(1, 2),
	))

	// Property 4: any integer uuid passes the node filter, any other scalar fails it
	properties.Property("node filter accepts integer uuids only", prop.ForAll(
		func(id int64, asString bool) bool {
			var uuid any = id
			if asString {
				uuid = "x"
			}
			body, _ := json.Marshal(map[string]any{
				"sessionId": "s", "scope": "full_doc",
				"nodes": []any{map[string]any{"uuid": uuid}},
			})
			req, err := contracts.Validate(ctx, v, contracts.AnalysisRequestModel, body)
			if asString {
				return err != nil && contracts.Classify(issuesFrom(err)) == contracts.KindMalformedFilter
			}
			return err == nil && req.Value.Nodes[0].UUID() == id
		},
		gen.Int64(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func issuesFrom(err error) fmeaskema.Issues {
	if ve, ok := err.(*contracts.ValidationError); ok {
		return ve.Issues
	}
	return nil
}
