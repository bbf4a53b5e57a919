package metrics_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/fmeaskema/contracts"
	"github.com/reoring/fmeaskema/metrics"
)

func counterValue(t *testing.T, c *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	m, err := c.GetMetricWithLabelValues(labels...)
	require.NoError(t, err)
	var metric dto.Metric
	require.NoError(t, m.Write(&metric))
	return metric.GetCounter().GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := metrics.NewRegistry()
	require.NotNil(t, r.ValidationsTotal)
	require.NotNil(t, r.ValidationDuration)
	require.NotNil(t, r.UnknownFieldsTotal)
	require.NotNil(t, r.IssuesTotal)
	require.NotNil(t, r.GetPrometheusRegistry())

	assert.Same(t, metrics.DefaultRegistry(), metrics.DefaultRegistry())
}

func TestRecordValidation(t *testing.T) {
	r := metrics.NewRegistry()
	r.RecordValidation("DFMEAAnalysisRequest", metrics.OutcomeOK, 2*time.Millisecond)
	r.RecordValidation("DFMEAAnalysisRequest", metrics.OutcomeOK, 3*time.Millisecond)
	r.RecordValidation("DFMEAAnalysisRequest", "MalformedFilter", time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, r.ValidationsTotal, "DFMEAAnalysisRequest", "ok"))
	assert.Equal(t, 1.0, counterValue(t, r.ValidationsTotal, "DFMEAAnalysisRequest", "MalformedFilter"))

	h, err := r.ValidationDuration.GetMetricWithLabelValues("DFMEAAnalysisRequest")
	require.NoError(t, err)
	var metric dto.Metric
	require.NoError(t, h.(prometheus.Metric).Write(&metric))
	assert.Equal(t, uint64(3), metric.GetHistogram().GetSampleCount())
}

func TestRegistryAsObserver(t *testing.T) {
	r := metrics.NewRegistry()
	v := contracts.NewValidator(contracts.Options{Observer: r})
	ctx := context.Background()

	_, err := contracts.Validate(ctx, v, contracts.SessionModel, []byte(`{"sessionId":"s1","a":1,"b":2}`))
	require.NoError(t, err)
	_, err = contracts.Validate(ctx, v, contracts.AnalysisRequestModel,
		[]byte(`{"sessionId":"s1","scope":"full_doc","nodes":[{"id":1},{"id":2}]}`))
	require.Error(t, err)
	_, err = contracts.Validate(ctx, v, contracts.NetworkLinkModel, []byte(`{"from":1,"to":2,"type":5}`))
	require.Error(t, err)

	assert.Equal(t, 1.0, counterValue(t, r.ValidationsTotal, "SessionableRequest", "ok"))
	assert.Equal(t, 1.0, counterValue(t, r.ValidationsTotal, "BaseAnalysisRequest", "MalformedFilter"))
	assert.Equal(t, 1.0, counterValue(t, r.ValidationsTotal, "NetworkLink", "SchemaMismatch"))
	assert.Equal(t, 2.0, counterValue(t, r.UnknownFieldsTotal, "SessionableRequest"))
	assert.Equal(t, 2.0, counterValue(t, r.IssuesTotal, "malformed_filter"))
	assert.Equal(t, 1.0, counterValue(t, r.IssuesTotal, "invalid_enum"))
}

func TestHandler(t *testing.T) {
	r := metrics.NewRegistry()
	r.RecordValidation("NetworkLink", metrics.OutcomeOK, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `fmeaskema_validations_total{model="NetworkLink",outcome="ok"} 1`)
	assert.Contains(t, string(body), "fmeaskema_validation_duration_seconds_bucket")
}
