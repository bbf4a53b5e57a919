package contracts

import (
	"context"
	"sort"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/dsl"
	js "github.com/reoring/fmeaskema/jsonschema"

	// installs the go-json token driver
	_ "github.com/reoring/fmeaskema/source"
)

// Model pairs a schema with the names it is known by: Key addresses it in
// the registry, Name appears in warnings and errors.
type Model[T any] struct {
	key    string
	name   string
	schema fmeaskema.Schema[T]
}

func newModel[T any](key, name string, s fmeaskema.Schema[T]) Model[T] {
	m := Model[T]{key: key, name: name, schema: s}
	register(m)
	return m
}

func (m Model[T]) Key() string                     { return m.key }
func (m Model[T]) Name() string                    { return m.name }
func (m Model[T]) Schema() fmeaskema.Schema[T]     { return m.schema }
func (m Model[T]) JSONSchema() (*js.Schema, error) { return m.schema.JSONSchema() }

// Parse validates an already decoded value. Failures are *ValidationError.
func (m Model[T]) Parse(ctx context.Context, v any) (T, error) {
	out, err := m.schema.Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, newValidationError(m.name, err)
	}
	return out, nil
}

// ParseJSON decodes and validates one JSON document. Numbers are kept exact,
// so 64-bit ids survive.
func (m Model[T]) ParseJSON(ctx context.Context, data []byte, opts ...fmeaskema.ParseOpt) (T, error) {
	out, err := fmeaskema.ParseFrom(ctx, m.schema, fmeaskema.JSONBytes(data), opts...)
	if err != nil {
		var zero T
		return zero, newValidationError(m.name, err)
	}
	return out, nil
}

func (m Model[T]) ParseAny(ctx context.Context, v any) (any, error) { return m.Parse(ctx, v) }

func (m Model[T]) ParseJSONAny(ctx context.Context, data []byte, opts ...fmeaskema.ParseOpt) (any, error) {
	return m.ParseJSON(ctx, data, opts...)
}

// AnyModel is a Model with its type parameter erased.
type AnyModel interface {
	Key() string
	Name() string
	JSONSchema() (*js.Schema, error)
	ParseAny(ctx context.Context, v any) (any, error)
	ParseJSONAny(ctx context.Context, data []byte, opts ...fmeaskema.ParseOpt) (any, error)
}

var registry = map[string]AnyModel{}

func register(m AnyModel) {
	if _, dup := registry[m.Key()]; dup {
		panic("contracts: model registered twice: " + m.Key())
	}
	registry[m.Key()] = m
}

// Lookup returns the model registered under key.
func Lookup(key string) (AnyModel, bool) {
	m, ok := registry[key]
	return m, ok
}

// Keys lists the registered model keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Registry returns every registered model ordered by key.
func Registry() []AnyModel {
	keys := Keys()
	out := make([]AnyModel, len(keys))
	for i, k := range keys {
		out[i] = registry[k]
	}
	return out
}

var (
	SessionModel                = newModel("session", "SessionableRequest", sessionRequestSchema)
	DocumentUploadRequestModel  = newModel("document.upload.request", "DocumentUploadRequest", documentUploadRequestSchema)
	DocumentUploadResponseModel = newModel("document.upload.response", "DocumentUploadResponse", documentUploadResponseSchema)
	DocumentUploadResultsModel  = newModel("document.upload.results", "DocumentUploadResponseList",
		fmeaskema.Schema[[]DocumentUploadResponse](dsl.Array(documentUploadResponseSchema)))
	AnalysisRequestModel = newModel("analysis.request", "BaseAnalysisRequest", analysisRequestSchema)

	RequirementsRequestModel  = newModel("requirements.request", "RequirementsAnalysisRequest", requirementsRequestSchema)
	RequirementsResponseModel = newModel("requirements.response", "RequirementAnalysisResponse", requirementResponseSchema)
	RequirementNodeModel      = newModel("requirements.node", "RequirementAnalysisNode", RequirementNodeSchema)

	DFMEARequestModel   = newModel("dfmea.request", "DFMEAAnalysisRequest", dfmeaRequestSchema)
	DFMEAResponseModel  = newModel("dfmea.response", "DFMEAAnalysisResponse", dfmeaResponseSchema)
	DFMEANodeModel      = newModel("dfmea.node", "DFMEAAnalysisNode", DFMEANodeSchema)
	DFMEABaseInfoModel  = newModel("dfmea.base_info", "DFMEABaseInfo", dfmeaBaseInfoSchema)
	DFMEAInterfaceModel = newModel("dfmea.interface", "DFMEAInterface", dfmeaInterfaceSchema)

	PFMEARequestModel  = newModel("pfmea.request", "PFMEAAnalysisRequest", pfmeaRequestSchema)
	PFMEAResponseModel = newModel("pfmea.response", "PFMEAAnalysisResponse", pfmeaResponseSchema)
	PFMEANodeModel     = newModel("pfmea.node", "PFMEAAnalysisNode", PFMEANodeSchema)
	PFMEABaseInfoModel = newModel("pfmea.base_info", "PFMEABaseInfo", pfmeaBaseInfoSchema)

	NetworkLinkModel = newModel("network_link", "NetworkLink", networkLinkSchema)
)
