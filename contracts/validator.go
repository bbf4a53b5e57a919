package contracts

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/observe"
)

const eventSource = "contracts.Validator"

// Options configures a Validator.
type Options struct {
	// ParseOpt applies to JSON input (duplicate keys, depth, size, fail-fast).
	ParseOpt fmeaskema.ParseOpt
	// Observer receives validate.* events. Nil means no events.
	Observer observe.Observer
	// WarningsAsErrors turns every unknown-field warning into an
	// unknown_field issue and fails the call.
	WarningsAsErrors bool
	// StrictActionDetection enables RuleActionDetection.
	StrictActionDetection bool
	// WarningSink, when set, also receives every warning as it is raised.
	WarningSink fmeaskema.WarningSink
}

// Validator runs models with a fixed set of options. It holds no per-call
// state and is safe for concurrent use.
type Validator struct {
	opts Options
}

// NewValidator returns a Validator using opts.
func NewValidator(opts Options) *Validator {
	if opts.Observer == nil {
		opts.Observer = observe.NoOpObserver{}
	}
	return &Validator{opts: opts}
}

// Options returns the options the validator was built with.
func (v *Validator) Options() Options { return v.opts }

// Result is a successful validation: the value plus the warnings raised
// while producing it. ID correlates the call with its observer events.
type Result[T any] struct {
	ID       uuid.UUID
	Value    T
	Warnings []fmeaskema.Warning
}

// Validate decodes data as JSON and validates it against m.
func Validate[T any](ctx context.Context, v *Validator, m Model[T], data []byte) (Result[T], error) {
	return run(ctx, v, m.Name(), func(ctx context.Context) (T, error) {
		return m.ParseJSON(ctx, data, v.opts.ParseOpt)
	})
}

// ValidateValue validates an already decoded value, such as a YAML document
// or a map built in Go.
func ValidateValue[T any](ctx context.Context, v *Validator, m Model[T], raw any) (Result[T], error) {
	return run(ctx, v, m.Name(), func(ctx context.Context) (T, error) {
		return m.Parse(ctx, raw)
	})
}

// ValidateAny is Validate for a model looked up at runtime.
func (v *Validator) ValidateAny(ctx context.Context, m AnyModel, data []byte) (Result[any], error) {
	return run(ctx, v, m.Name(), func(ctx context.Context) (any, error) {
		return m.ParseJSONAny(ctx, data, v.opts.ParseOpt)
	})
}

// ValidateAnyValue is ValidateValue for a model looked up at runtime.
func (v *Validator) ValidateAnyValue(ctx context.Context, m AnyModel, raw any) (Result[any], error) {
	return run(ctx, v, m.Name(), func(ctx context.Context) (any, error) {
		return m.ParseAny(ctx, raw)
	})
}

func run[T any](ctx context.Context, v *Validator, model string, parse func(context.Context) (T, error)) (Result[T], error) {
	res := Result[T]{ID: uuid.New()}
	start := time.Now()
	base := map[string]any{observe.KeyValidationID: res.ID.String(), observe.KeyModel: model}

	var col fmeaskema.WarningCollector
	pctx := fmeaskema.WithWarningSink(ctx, func(wctx context.Context, w fmeaskema.Warning) {
		col.Add(wctx, w)
		v.emit(ctx, observe.EventValidateWarning, observe.LevelWarning, base, map[string]any{
			observe.KeyPath: w.Path,
			observe.KeyKeys: w.Keys,
		})
		if v.opts.WarningSink != nil {
			v.opts.WarningSink(wctx, w)
		}
	})
	if v.opts.StrictActionDetection {
		pctx = WithStrictActionDetection(pctx, true)
	}
	if v.opts.ParseOpt.FailFast {
		pctx = fmeaskema.WithFailFast(pctx, true)
	}

	v.emit(ctx, observe.EventValidateStart, observe.LevelVerbose, base, nil)
	val, err := parse(pctx)
	res.Warnings = col.Warnings()
	if err == nil && v.opts.WarningsAsErrors && len(res.Warnings) > 0 {
		iss := make(fmeaskema.Issues, 0, len(res.Warnings))
		for _, w := range res.Warnings {
			iss = append(iss, w.Issue())
		}
		err = &ValidationError{Model: model, Kind: KindSchemaMismatch, Issues: iss}
	}
	elapsed := time.Since(start)
	if err != nil {
		ve := newValidationError(model, err)
		codes := make([]string, len(ve.Issues))
		for i, it := range ve.Issues {
			codes[i] = it.Code
		}
		v.emit(ctx, observe.EventValidateFailed, observe.LevelWarning, base, map[string]any{
			observe.KeyDuration: elapsed,
			observe.KeyKind:     string(ve.Kind),
			observe.KeyCodes:    codes,
			observe.KeyIssues:   len(ve.Issues),
		})
		return res, ve
	}
	res.Value = val
	v.emit(ctx, observe.EventValidateComplete, observe.LevelInfo, base, map[string]any{
		observe.KeyDuration: elapsed,
		observe.KeyWarnings: len(res.Warnings),
	})
	return res, nil
}

func (v *Validator) emit(ctx context.Context, typ observe.EventType, level observe.Level, base, extra map[string]any) {
	data := make(map[string]any, len(base)+len(extra))
	for k, val := range base {
		data[k] = val
	}
	for k, val := range extra {
		data[k] = val
	}
	v.opts.Observer.OnEvent(ctx, observe.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    eventSource,
		Data:      data,
	})
}

// Encode serializes value with its wire names and validates the output
// against m, so a response that would not parse on the other side is never
// sent.
func Encode[T any](ctx context.Context, m Model[T], value T) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	ctx = fmeaskema.WithWarningSink(ctx, func(context.Context, fmeaskema.Warning) {})
	if _, err := m.ParseJSON(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}
