package contracts

import (
	"github.com/reoring/fmeaskema/dsl"
)

// NetworkLink is a directed edge of a feature or failure net. On the wire
// the endpoints are named "from" and "to".
type NetworkLink struct {
	FromID int64    `json:"from" fmeaskema:"name=fromId"`
	ToID   int64    `json:"to" fmeaskema:"name=toId"`
	Type   LinkType `json:"type"`
}

// DFMEAInterface links two structure nodes of a DFMEA.
type DFMEAInterface struct {
	StructureID  int64           `json:"structureId"`
	StartID      int64           `json:"startId"`
	EndID        int64           `json:"endId"`
	Type         InterfaceType   `json:"type"`
	Interaction  Interaction     `json:"interaction"`
	Effect       InterfaceEffect `json:"effect"`
	Description  string          `json:"description"`
	VirtualParts string          `json:"virtualParts"`
}

// DFMEABaseInfo is the header of a DFMEA document.
type DFMEABaseInfo struct {
	Name               string `json:"name"`
	PartNo             string `json:"partNo"`
	PartName           string `json:"partName"`
	EvaluationCriteria string `json:"evaluationCriteria"`
}

// PFMEABaseInfo is the header of a PFMEA document. ProcessName is optional
// and passed through unchecked.
type PFMEABaseInfo struct {
	Name               string  `json:"name"`
	PartNo             string  `json:"partNo"`
	PartName           string  `json:"partName"`
	ProcessName        *string `json:"processName,omitempty"`
	EvaluationCriteria string  `json:"evaluationCriteria"`
}

// RequirementAnalysisResponse is the result of a requirements analysis.
type RequirementAnalysisResponse struct {
	Nodes []RequirementNode `json:"nodes"`
}

// DFMEAAnalysisResponse is the result of a DFMEA.
type DFMEAAnalysisResponse struct {
	BaseInfo   DFMEABaseInfo    `json:"baseInfo"`
	Nodes      []DFMEANode      `json:"nodes"`
	FeatureNet []NetworkLink    `json:"featureNet,omitempty"`
	FailureNet []NetworkLink    `json:"failureNet,omitempty"`
	Interface  []DFMEAInterface `json:"interface,omitempty"`
}

// PFMEAAnalysisResponse is the result of a PFMEA.
type PFMEAAnalysisResponse struct {
	BaseInfo   PFMEABaseInfo `json:"baseInfo"`
	Nodes      []PFMEANode   `json:"nodes"`
	FeatureNet []NetworkLink `json:"featureNet,omitempty"`
	FailureNet []NetworkLink `json:"failureNet,omitempty"`
}

func str() dsl.AnyAdapter { return dsl.SchemaOf[string](dsl.String()) }

func withBaseInfo(b *dsl.ObjectBuilder) *dsl.ObjectBuilder {
	return b.
		Field("name", str()).Required().
		Field("partNo", str()).Required().
		Field("partName", str()).Required().
		Field("evaluationCriteria", str()).Required()
}

var (
	networkLinkSchema = dsl.MustBind[NetworkLink](
		dsl.Object().Named("NetworkLink").
			Field("fromId", dsl.Int64Of()).Alias("from").Required().
			Field("toId", dsl.Int64Of()).Alias("to").Required().
			Field("type", dsl.IntEnumOf(LinkLeft, LinkRight)).Describe("1 left, 2 right").Required().
			UnknownWarn())

	dfmeaInterfaceSchema = dsl.MustBind[DFMEAInterface](
		dsl.Object().Named("DFMEAInterface").
			Field("structureId", dsl.Int64Of()).Required().
			Field("startId", dsl.Int64Of()).Required().
			Field("endId", dsl.Int64Of()).Required().
			Field("type", dsl.IntEnumOf(interfaceTypes...)).Required().
			Field("interaction", dsl.IntEnumOf(InteractionOneWay, InteractionTwoWay)).Describe("0 one-way, 1 two-way").Required().
			Field("effect", dsl.IntEnumOf(EffectBeneficial, EffectHarmful)).Describe("0 beneficial, 1 harmful").Required().
			Field("description", str()).Required().
			Field("virtualParts", str()).Required().
			UnknownWarn())

	dfmeaBaseInfoSchema = dsl.MustBind[DFMEABaseInfo](
		withBaseInfo(dsl.Object().Named("DFMEABaseInfo")).UnknownWarn())

	pfmeaBaseInfoSchema = dsl.MustBind[PFMEABaseInfo](
		withBaseInfo(dsl.Object().Named("PFMEABaseInfo")).
			Field("processName", optString()).Optional().
			UnknownWarn())

	netField = dsl.ArrayOf(networkLinkSchema).Nullable()

	requirementResponseSchema = dsl.MustBind[RequirementAnalysisResponse](
		dsl.Object().Named("RequirementAnalysisResponse").
			Field("nodes", dsl.ArrayOf(RequirementNodeSchema)).Required().
			UnknownWarn())

	dfmeaResponseSchema = dsl.MustBind[DFMEAAnalysisResponse](
		dsl.Object().Named("DFMEAAnalysisResponse").
			Field("baseInfo", dsl.SchemaOf(dfmeaBaseInfoSchema)).Required().
			Field("nodes", dsl.ArrayOf(DFMEANodeSchema)).Required().
			Field("featureNet", netField).Optional().
			Field("failureNet", netField).Optional().
			Field("interface", dsl.ArrayOf(dfmeaInterfaceSchema).Nullable()).Optional().
			UnknownWarn())

	pfmeaResponseSchema = dsl.MustBind[PFMEAAnalysisResponse](
		dsl.Object().Named("PFMEAAnalysisResponse").
			Field("baseInfo", dsl.SchemaOf(pfmeaBaseInfoSchema)).Required().
			Field("nodes", dsl.ArrayOf(PFMEANodeSchema)).Required().
			Field("featureNet", netField).Optional().
			Field("failureNet", netField).Optional().
			UnknownWarn())
)
