package metrics

import (
	"context"
	"time"

	"github.com/reoring/fmeaskema/observe"
)

// OutcomeOK labels a successful validation; failures are labelled with their
// error kind.
const OutcomeOK = "ok"

// RecordValidation records one finished validation.
func (r *Registry) RecordValidation(model, outcome string, duration time.Duration) {
	r.ValidationsTotal.WithLabelValues(model, outcome).Inc()
	r.ValidationDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordUnknownFields counts keys dropped from a record of model.
func (r *Registry) RecordUnknownFields(model string, n int) {
	r.UnknownFieldsTotal.WithLabelValues(model).Add(float64(n))
}

// RecordIssues counts issues by code.
func (r *Registry) RecordIssues(codes []string) {
	for _, c := range codes {
		r.IssuesTotal.WithLabelValues(c).Inc()
	}
}

// OnEvent implements observe.Observer.
func (r *Registry) OnEvent(_ context.Context, e observe.Event) {
	model, _ := e.Data[observe.KeyModel].(string)
	switch e.Type {
	case observe.EventValidateWarning:
		keys, _ := e.Data[observe.KeyKeys].([]string)
		r.RecordUnknownFields(model, len(keys))
	case observe.EventValidateComplete:
		d, _ := e.Data[observe.KeyDuration].(time.Duration)
		r.RecordValidation(model, OutcomeOK, d)
	case observe.EventValidateFailed:
		d, _ := e.Data[observe.KeyDuration].(time.Duration)
		kind, _ := e.Data[observe.KeyKind].(string)
		r.RecordValidation(model, kind, d)
		codes, _ := e.Data[observe.KeyCodes].([]string)
		r.RecordIssues(codes)
	}
}

var _ observe.Observer = (*Registry)(nil)
