package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/contracts"
	"github.com/reoring/fmeaskema/middleware"
)

func serve(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dfmea", strings.NewReader(body)))
	return rec
}

func decodePayload(t *testing.T, rec *httptest.ResponseRecorder) middleware.ErrorPayload {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var p middleware.ErrorPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestValidate(t *testing.T) {
	v := contracts.NewValidator(contracts.Options{})

	var got contracts.Result[contracts.DFMEAAnalysisRequest]
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, ok := middleware.ResultFromContext[contracts.DFMEAAnalysisRequest](r.Context())
		require.True(t, ok)
		got = res
		w.WriteHeader(http.StatusAccepted)
	})
	h := middleware.Validate(v, contracts.DFMEARequestModel, next)

	t.Run("ok", func(t *testing.T) {
		rec := serve(t, h, `{"sessionId":"s1","scope":"structure_only","nodes":[{"uuid":5}],"client":"web"}`)
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "s1", got.Value.SessionID)
		require.Len(t, got.Warnings, 1)
		assert.Equal(t, []string{"client"}, got.Warnings[0].Keys)
	})

	t.Run("malformed filter", func(t *testing.T) {
		rec := serve(t, h, `{"sessionId":"s1","scope":"structure_only","nodes":[{"id":5}]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		p := decodePayload(t, rec)
		assert.Equal(t, "DFMEAAnalysisRequest", p.Model)
		assert.Equal(t, "MalformedFilter", p.Kind)
		require.Len(t, p.Issues, 1)
		assert.Equal(t, "/nodes/0", p.Issues[0].Path)
		assert.Equal(t, fmeaskema.CodeMalformedFilter, p.Issues[0].Code)
		assert.Equal(t, contracts.RuleNodeFilter, p.Issues[0].Rule)
	})

	t.Run("schema mismatch", func(t *testing.T) {
		rec := serve(t, h, `{"sessionId":"s1","scope":"partial"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		p := decodePayload(t, rec)
		assert.Equal(t, "SchemaMismatch", p.Kind)
		assert.Equal(t, "/scope", p.Issues[0].Path)
	})

	t.Run("malformed input", func(t *testing.T) {
		rec := serve(t, h, `{"sessionId":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "MalformedInput", decodePayload(t, rec).Kind)
	})
}

func TestValidate_MaxBytes(t *testing.T) {
	v := contracts.NewValidator(contracts.Options{ParseOpt: fmeaskema.ParseOpt{MaxBytes: 16}})
	h := middleware.Validate(v, contracts.SessionModel, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not run")
	}))
	rec := serve(t, h, `{"sessionId":"a-very-long-session-identifier"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MalformedInput", decodePayload(t, rec).Kind)
}

func TestWriteError_Unclassified(t *testing.T) {
	rec := httptest.NewRecorder()
	middleware.WriteError(rec, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, middleware.StatusFor(contracts.KindSchemaMismatch))
	assert.Equal(t, http.StatusBadRequest, middleware.StatusFor(contracts.KindMalformedFilter))
	assert.Equal(t, http.StatusBadRequest, middleware.StatusFor(contracts.KindMalformedInput))
}
