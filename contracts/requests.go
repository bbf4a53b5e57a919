package contracts

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/dsl"
	"github.com/reoring/fmeaskema/i18n"
)

// RuleNodeFilter names the pre-validation check of AnalysisRequest.Nodes.
const RuleNodeFilter = "node_filter"

// SessionRequest carries the opaque session id every request is scoped to.
type SessionRequest struct {
	SessionID   string   `json:"sessionId"`
	DocumentIDs []string `json:"documentIds,omitempty"`
}

// DocumentUploadRequest asks the backend to fetch and store documents.
type DocumentUploadRequest struct {
	SessionRequest
	URLs []string `json:"urls"`
}

// DocumentUploadResponse describes one processed url.
type DocumentUploadResponse struct {
	DocumentID string `json:"documentId"`
	FileName   string `json:"fileName"`
	UploadTime string `json:"uploadTime"`
}

// NodeRef selects a node for analysis. It always carries "uuid".
type NodeRef map[string]int64

// UUID returns the referenced node id.
func (r NodeRef) UUID() int64 { return r["uuid"] }

// AnalysisRequest is the part shared by the three analysis requests.
type AnalysisRequest struct {
	SessionRequest
	Scope        Scope     `json:"scope"`
	Nodes        []NodeRef `json:"nodes,omitempty"`
	ExtraPayload *string   `json:"extraPayload,omitempty"`
}

// ModifiedRequirementsStructure is a caller-edited requirements tree.
type ModifiedRequirementsStructure struct {
	Nodes []RequirementNode `json:"nodes"`
}

// RequirementsAnalysisRequest starts a requirements analysis.
type RequirementsAnalysisRequest struct {
	AnalysisRequest
	ModifiedStructure *ModifiedRequirementsStructure `json:"modifiedStructure,omitempty"`
}

// ModifiedDFMEAStructure is a caller-edited DFMEA tree.
type ModifiedDFMEAStructure struct {
	BaseInfo *DFMEABaseInfo `json:"baseInfo,omitempty"`
	Nodes    []DFMEANode    `json:"nodes"`
}

// DFMEAAnalysisRequest starts a DFMEA.
type DFMEAAnalysisRequest struct {
	AnalysisRequest
	ModifiedStructure *ModifiedDFMEAStructure `json:"modifiedStructure,omitempty"`
}

// ModifiedPFMEAStructure is a caller-edited PFMEA tree.
type ModifiedPFMEAStructure struct {
	BaseInfo *PFMEABaseInfo `json:"baseInfo,omitempty"`
	Nodes    []PFMEANode    `json:"nodes"`
}

// PFMEAAnalysisRequest starts a PFMEA.
type PFMEAAnalysisRequest struct {
	AnalysisRequest
	ModifiedStructure *ModifiedPFMEAStructure `json:"modifiedStructure,omitempty"`
}

func withSession(b *dsl.ObjectBuilder) *dsl.ObjectBuilder {
	return b.
		Field("sessionId", dsl.SchemaOf[string](dsl.String().NonEmpty())).Required().
		Field("documentIds", dsl.ArrayOf[string](dsl.String()).Nullable()).Optional()
}

func withAnalysis(b *dsl.ObjectBuilder) *dsl.ObjectBuilder {
	return withSession(b).
		Before(RuleNodeFilter, checkNodeFilter).
		Field("scope", dsl.StringEnumOf(ScopeStructureOnly, ScopeFullDoc)).Required().
		Field("nodes", dsl.ArrayOf[map[string]int64](dsl.Map[int64](dsl.Int64())).Nullable()).Optional().
		Field("extraPayload", optString()).Optional()
}

// checkNodeFilter inspects the raw record: every "nodes" entry must be an
// object with an integer "uuid".
func checkNodeFilter(ctx context.Context, raw map[string]any) error {
	v, ok := raw["nodes"]
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return fmeaskema.Issues{filterIssue("/nodes")}
	}
	var iss fmeaskema.Issues
	for i, e := range list {
		if rec, ok := e.(map[string]any); ok && isIntegerLiteral(rec["uuid"]) {
			continue
		}
		iss = fmeaskema.AppendIssues(iss, filterIssue("/nodes/"+strconv.Itoa(i)))
		if fmeaskema.IsFailFast(ctx) {
			break
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func filterIssue(path string) fmeaskema.Issue {
	return fmeaskema.Issue{
		Path:    path,
		Code:    fmeaskema.CodeMalformedFilter,
		Message: i18n.T(fmeaskema.CodeMalformedFilter, nil),
		Params:  map[string]any{"field": "uuid"},
	}
}

// isIntegerLiteral accepts JSON integers. A float64 only reaches here under
// NumberFloat64 decoding, where 5 and 5.0 are indistinguishable.
func isIntegerLiteral(v any) bool {
	switch n := v.(type) {
	case nil, bool, string:
		return false
	case json.Number:
		_, err := n.Int64()
		return err == nil
	}
	_, ok := dsl.ToInt64(v)
	return ok
}

var (
	sessionRequestSchema = dsl.MustBind[SessionRequest](
		withSession(dsl.Object().Named("SessionableRequest")).UnknownWarn())

	documentUploadRequestSchema = dsl.MustBind[DocumentUploadRequest](
		withSession(dsl.Object().Named("DocumentUploadRequest")).
			Field("urls", dsl.ArrayOf[string](dsl.URL())).Required().
			UnknownWarn())

	documentUploadResponseSchema = dsl.MustBind[DocumentUploadResponse](
		dsl.Object().Named("DocumentUploadResponse").
			Field("documentId", dsl.SchemaOf[string](dsl.String())).Required().
			Field("fileName", dsl.SchemaOf[string](dsl.String())).Required().
			Field("uploadTime", dsl.SchemaOf[string](dsl.String())).Required().
			UnknownWarn())

	analysisRequestSchema = dsl.MustBind[AnalysisRequest](
		withAnalysis(dsl.Object().Named("BaseAnalysisRequest")).UnknownWarn())

	modifiedRequirementsSchema = dsl.MustBind[ModifiedRequirementsStructure](
		dsl.Object().Named("ModifiedRequirementsStructure").
			Field("nodes", dsl.ArrayOf(RequirementNodeSchema)).Required().
			UnknownWarn())

	requirementsRequestSchema = dsl.MustBind[RequirementsAnalysisRequest](
		withAnalysis(dsl.Object().Named("RequirementsAnalysisRequest")).
			Field("modifiedStructure", dsl.SchemaOf(modifiedRequirementsSchema).Nullable()).Optional().
			UnknownWarn())

	modifiedDFMEASchema = dsl.MustBind[ModifiedDFMEAStructure](
		dsl.Object().Named("ModifiedDFMEAStructure").
			Field("baseInfo", dsl.SchemaOf(dfmeaBaseInfoSchema).Nullable()).Optional().
			Field("nodes", dsl.ArrayOf(DFMEANodeSchema)).Required().
			UnknownWarn())

	dfmeaRequestSchema = dsl.MustBind[DFMEAAnalysisRequest](
		withAnalysis(dsl.Object().Named("DFMEAAnalysisRequest")).
			Field("modifiedStructure", dsl.SchemaOf(modifiedDFMEASchema).Nullable()).Optional().
			UnknownWarn())

	modifiedPFMEASchema = dsl.MustBind[ModifiedPFMEAStructure](
		dsl.Object().Named("ModifiedPFMEAStructure").
			Field("baseInfo", dsl.SchemaOf(pfmeaBaseInfoSchema).Nullable()).Optional().
			Field("nodes", dsl.ArrayOf(PFMEANodeSchema)).Required().
			UnknownWarn())

	pfmeaRequestSchema = dsl.MustBind[PFMEAAnalysisRequest](
		withAnalysis(dsl.Object().Named("PFMEAAnalysisRequest")).
			Field("modifiedStructure", dsl.SchemaOf(modifiedPFMEASchema).Nullable()).Optional().
			UnknownWarn())
)
