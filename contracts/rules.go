package contracts

import (
	"context"
	"fmt"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/dsl"
)

// RuleActionDetection names the opt-in check that a detection rating only
// accompanies the action categories that detect.
const RuleActionDetection = "action_detection_category"

type ctxKey int

const ctxKeyStrictDetection ctxKey = iota

// WithStrictActionDetection enables RuleActionDetection for parses using ctx.
// It is off unless a Validator is configured for it.
func WithStrictActionDetection(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, ctxKeyStrictDetection, enabled)
}

// StrictActionDetection reports whether RuleActionDetection is enabled on ctx.
func StrictActionDetection(ctx context.Context) bool {
	b, _ := ctx.Value(ctxKeyStrictDetection).(bool)
	return b
}

func detectionRule[C ~int](allowed ...C) func(context.Context, map[string]any) error {
	return func(ctx context.Context, m map[string]any) error {
		if !StrictActionDetection(ctx) || m["detection"] == nil {
			return nil
		}
		cat, _ := dsl.ToInt64(m["category"])
		for _, a := range allowed {
			if int64(a) == cat {
				return nil
			}
		}
		return fmeaskema.Issues{fmeaskema.Issue{
			Path:    "/detection",
			Code:    fmeaskema.CodeCustom,
			Message: fmt.Sprintf("detection is only rated for action categories %v", allowed),
			Params:  map[string]any{"category": cat, "allowed": allowed},
		}}
	}
}
