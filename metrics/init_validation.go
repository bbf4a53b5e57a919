package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initValidationMetrics() {
	r.ValidationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fmeaskema_validations_total",
			Help: "Total number of validations",
		},
		[]string{"model", "outcome"}, // ok, SchemaMismatch, MalformedFilter, MalformedInput
	)

	r.ValidationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fmeaskema_validation_duration_seconds",
			Help:    "Validation latency in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"model"},
	)

	r.UnknownFieldsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fmeaskema_unknown_fields_total",
			Help: "Undeclared fields dropped with a warning",
		},
		[]string{"model"},
	)

	r.IssuesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fmeaskema_issues_total",
			Help: "Validation issues reported, by code",
		},
		[]string{"code"},
	)
}
