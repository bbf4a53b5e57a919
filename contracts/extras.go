package contracts

import (
	"bytes"

	json "github.com/goccy/go-json"

	"github.com/reoring/fmeaskema/dsl"
)

// Extra payloads are open records: declared fields are typed and checked,
// every other key lands in Rest and is written back by MarshalJSON.
// Pointer fields are optional and accept JSON null.

// OpenExtra is an extra payload without declared fields.
type OpenExtra struct {
	Rest map[string]any `json:"-" fmeaskema:"extras"`
}

func (e OpenExtra) MarshalJSON() ([]byte, error) { return mergeRest(struct{}{}, e.Rest) }

// RequirementExtra belongs to requirement nodes.
type RequirementExtra struct {
	PartNo   *string        `json:"partNo"`
	PartName *string        `json:"partName"`
	Rest     map[string]any `json:"-" fmeaskema:"extras"`
}

func (e RequirementExtra) MarshalJSON() ([]byte, error) {
	type plain RequirementExtra
	return mergeRest(plain(e), e.Rest)
}

// DFMEAComponentExtra belongs to DFMEA system, subsystem and component nodes.
type DFMEAComponentExtra struct {
	DR   *DesignResponsibility `json:"dr"`
	Rest map[string]any        `json:"-" fmeaskema:"extras"`
}

func (e DFMEAComponentExtra) MarshalJSON() ([]byte, error) {
	type plain DFMEAComponentExtra
	return mergeRest(plain(e), e.Rest)
}

// DFMEAFunctionExtra belongs to DFMEA function nodes.
type DFMEAFunctionExtra struct {
	Category *FunctionCategory `json:"category"`
	Rest     map[string]any    `json:"-" fmeaskema:"extras"`
}

func (e DFMEAFunctionExtra) MarshalJSON() ([]byte, error) {
	type plain DFMEAFunctionExtra
	return mergeRest(plain(e), e.Rest)
}

// CharacteristicSpec holds the specification columns shared by DFMEA and
// PFMEA characteristics.
type CharacteristicSpec struct {
	ReqSpe         *string `json:"req_spe"`        // requirement/specification, shown externally
	SpeTol         *string `json:"spe_tol"`        // specification/tolerance, internal
	Classification *string `json:"classification"` // defaults to "QCC"
}

// DFMEACharacteristicExtra belongs to DFMEA characteristic nodes.
type DFMEACharacteristicExtra struct {
	CharacteristicSpec
	Rest map[string]any `json:"-" fmeaskema:"extras"`
}

func (e DFMEACharacteristicExtra) MarshalJSON() ([]byte, error) {
	type plain DFMEACharacteristicExtra
	return mergeRest(plain(e), e.Rest)
}

// DFMEAFailureExtra belongs to DFMEA failure nodes. Ratings are 1..10.
type DFMEAFailureExtra struct {
	FailureType *FailureType   `json:"failureType"`
	Severity    *int           `json:"severity"`
	Occurrence  *int           `json:"occurrence"`
	Rest        map[string]any `json:"-" fmeaskema:"extras"`
}

func (e DFMEAFailureExtra) MarshalJSON() ([]byte, error) {
	type plain DFMEAFailureExtra
	return mergeRest(plain(e), e.Rest)
}

// DFMEAActionExtra belongs to DFMEA action nodes. Detection is meaningful
// for detection controls (category 2).
type DFMEAActionExtra struct {
	Category  DFMEAActionCategory `json:"category"`
	Detection *int                `json:"detection"`
	Rest      map[string]any      `json:"-" fmeaskema:"extras"`
}

func (e DFMEAActionExtra) MarshalJSON() ([]byte, error) {
	type plain DFMEAActionExtra
	return mergeRest(plain(e), e.Rest)
}

// PFMEAStepExtra belongs to PFMEA step nodes. PreSteps lists the ids of the
// preceding steps; they are not resolved here.
type PFMEAStepExtra struct {
	KeyProcess *bool              `json:"keyProcess"`
	PreSteps   []int64            `json:"preSteps"`
	Category   *OperationCategory `json:"category"`
	Rest       map[string]any     `json:"-" fmeaskema:"extras"`
}

func (e PFMEAStepExtra) MarshalJSON() ([]byte, error) {
	type plain PFMEAStepExtra
	return mergeRest(plain(e), e.Rest)
}

// PFMEAStep2Extra belongs to PFMEA sub-step nodes.
type PFMEAStep2Extra struct {
	PreSteps []int64            `json:"preSteps"`
	Category *OperationCategory `json:"category"`
	Rest     map[string]any     `json:"-" fmeaskema:"extras"`
}

func (e PFMEAStep2Extra) MarshalJSON() ([]byte, error) {
	type plain PFMEAStep2Extra
	return mergeRest(plain(e), e.Rest)
}

// PFMEAElementExtra belongs to PFMEA work element nodes.
type PFMEAElementExtra struct {
	EM   ElementType    `json:"em"`
	Rest map[string]any `json:"-" fmeaskema:"extras"`
}

func (e PFMEAElementExtra) MarshalJSON() ([]byte, error) {
	type plain PFMEAElementExtra
	return mergeRest(plain(e), e.Rest)
}

// PFMEACharacteristicExtra belongs to PFMEA characteristic nodes.
type PFMEACharacteristicExtra struct {
	Type CharacteristicType `json:"type"`
	CharacteristicSpec
	Rest map[string]any `json:"-" fmeaskema:"extras"`
}

func (e PFMEACharacteristicExtra) MarshalJSON() ([]byte, error) {
	type plain PFMEACharacteristicExtra
	return mergeRest(plain(e), e.Rest)
}

// PFMEAEffectExtra belongs to PFMEA failure effect nodes.
type PFMEAEffectExtra struct {
	Severity *int           `json:"severity"`
	Category *EffectScope   `json:"category"`
	Rest     map[string]any `json:"-" fmeaskema:"extras"`
}

func (e PFMEAEffectExtra) MarshalJSON() ([]byte, error) {
	type plain PFMEAEffectExtra
	return mergeRest(plain(e), e.Rest)
}

// PFMEACauseExtra belongs to PFMEA failure cause nodes.
type PFMEACauseExtra struct {
	Occurrence *int           `json:"occurrence"`
	Rest       map[string]any `json:"-" fmeaskema:"extras"`
}

func (e PFMEACauseExtra) MarshalJSON() ([]byte, error) {
	type plain PFMEACauseExtra
	return mergeRest(plain(e), e.Rest)
}

// PFMEAActionExtra belongs to PFMEA action nodes.
type PFMEAActionExtra struct {
	Detection *int                `json:"detection"`
	Category  PFMEAActionCategory `json:"category"`
	Rest      map[string]any      `json:"-" fmeaskema:"extras"`
}

func (e PFMEAActionExtra) MarshalJSON() ([]byte, error) {
	type plain PFMEAActionExtra
	return mergeRest(plain(e), e.Rest)
}

// mergeRest encodes declared and adds the keys of rest that declared does not
// already carry.
func mergeRest(declared any, rest map[string]any) ([]byte, error) {
	b, err := json.Marshal(declared)
	if err != nil || len(rest) == 0 {
		return b, err
	}
	merged := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&merged); err != nil {
		return nil, err
	}
	for k, v := range rest {
		if _, declared := merged[k]; !declared {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// ---- schemas ----

func optString() dsl.AnyAdapter { return dsl.SchemaOf[string](dsl.String()).Nullable() }

func rating() dsl.AnyAdapter { return dsl.IntRangeOf(1, 10).Nullable() }

func withSpec(b *dsl.ObjectBuilder) *dsl.ObjectBuilder {
	return b.
		Field("req_spe", optString()).Describe("requirement/specification").Optional().
		Field("spe_tol", optString()).Describe("specification/tolerance").Optional().
		Field("classification", optString()).Default("QCC")
}

var (
	openExtraSchema = dsl.MustBind[OpenExtra](dsl.Object().Named("ExtraDataModel").UnknownPassthrough())

	requirementExtraSchema = dsl.MustBind[RequirementExtra](
		dsl.Object().Named("RequirementNodeExtra").
			Field("partNo", optString()).Optional().
			Field("partName", optString()).Optional().
			UnknownPassthrough())

	dfmeaComponentExtraSchema = dsl.MustBind[DFMEAComponentExtra](
		dsl.Object().Named("DFMEAComponentExtra").
			Field("dr", dsl.IntEnumOf(DesignInternal, DesignExternal).Nullable()).Describe("0 internal, 1 external").Default(0).
			UnknownPassthrough())

	dfmeaFunctionExtraSchema = dsl.MustBind[DFMEAFunctionExtra](
		dsl.Object().Named("DFMEAFunctionExtra").
			Field("category", dsl.IntEnumOf(functionCategories...).Nullable()).Default(0).
			UnknownPassthrough())

	dfmeaCharacteristicExtraSchema = dsl.MustBind[DFMEACharacteristicExtra](
		withSpec(dsl.Object().Named("DFMEACharacteristicExtra")).UnknownPassthrough())

	dfmeaFailureExtraSchema = dsl.MustBind[DFMEAFailureExtra](
		dsl.Object().Named("DFMEAFailureExtra").
			Field("failureType", dsl.IntEnumOf(FailureUnclassified, FailureFunctional, FailureDesignError).Nullable()).Default(0).
			Field("severity", rating()).Optional().
			Field("occurrence", rating()).Optional().
			UnknownPassthrough())

	dfmeaActionExtraSchema = dsl.MustBind[DFMEAActionExtra](
		dsl.Object().Named("DFMEAActionExtra").
			Field("category", dsl.IntEnumOf(DFMEAActionPrevention, DFMEAActionDetection)).Describe("1 prevention, 2 detection").Default(1).
			Field("detection", rating()).Describe("set for detection controls").Optional().
			Refine(RuleActionDetection, detectionRule(DFMEAActionDetection)).
			UnknownPassthrough())

	pfmeaStepExtraSchema = dsl.MustBind[PFMEAStepExtra](
		dsl.Object().Named("PFMEAStepExtra").
			Field("keyProcess", dsl.BoolOf().Nullable()).Optional().
			Field("preSteps", dsl.ArrayOf[int64](dsl.Int64()).Nullable()).Optional().
			Field("category", dsl.IntEnumOf(operationCategories...).Nullable()).Default(1).
			UnknownPassthrough())

	pfmeaStep2ExtraSchema = dsl.MustBind[PFMEAStep2Extra](
		dsl.Object().Named("PFMEAStep2Extra").
			Field("preSteps", dsl.ArrayOf[int64](dsl.Int64()).Nullable()).Optional().
			Field("category", dsl.IntEnumOf(operationCategories...).Nullable()).Default(1).
			UnknownPassthrough())

	pfmeaElementExtraSchema = dsl.MustBind[PFMEAElementExtra](
		dsl.Object().Named("PFMEAElementExtra").
			Field("em", dsl.IntEnumOf(elementTypes...)).Describe("6M category").Required().
			UnknownPassthrough())

	pfmeaCharacteristicExtraSchema = dsl.MustBind[PFMEACharacteristicExtra](
		withSpec(dsl.Object().Named("PFMEACharacteristicExtra").
			Field("type", dsl.StringEnumOf(CharacteristicProduct, CharacteristicProcess)).Required()).
			UnknownPassthrough())

	pfmeaEffectExtraSchema = dsl.MustBind[PFMEAEffectExtra](
		dsl.Object().Named("PFMEAEffectExtra").
			Field("severity", rating()).Optional().
			Field("category", dsl.IntEnumOf(EffectInPlant, EffectShipTo, EffectEndUser).Nullable()).Optional().
			UnknownPassthrough())

	pfmeaCauseExtraSchema = dsl.MustBind[PFMEACauseExtra](
		dsl.Object().Named("PFMEACauseExtra").
			Field("occurrence", rating()).Optional().
			UnknownPassthrough())

	pfmeaActionExtraSchema = dsl.MustBind[PFMEAActionExtra](
		dsl.Object().Named("PFMEAActionExtra").
			Field("detection", rating()).Optional().
			Field("category", dsl.IntEnumOf(PFMEAActionPrevention, PFMEAActionDetection, PFMEAActionDesignChange)).Default(1).
			Refine(RuleActionDetection, detectionRule(PFMEAActionDetection, PFMEAActionDesignChange)).
			UnknownPassthrough())
)
