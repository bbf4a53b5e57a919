package contracts

// Closed enumerations used by extra payloads and relationship records. They
// travel on the wire as their literal values.

// DesignResponsibility tells whether a DFMEA component is designed in-house.
type DesignResponsibility int

const (
	DesignInternal DesignResponsibility = 0
	DesignExternal DesignResponsibility = 1
)

// FunctionCategory classifies a DFMEA function (0 = unclassified, 1..10).
type FunctionCategory int

// FailureType classifies a DFMEA failure.
type FailureType int

const (
	FailureUnclassified FailureType = 0
	FailureFunctional   FailureType = 1
	FailureDesignError  FailureType = 2
)

// DFMEAActionCategory separates prevention from detection controls.
type DFMEAActionCategory int

const (
	DFMEAActionPrevention DFMEAActionCategory = 1
	DFMEAActionDetection  DFMEAActionCategory = 2
)

// OperationCategory classifies a PFMEA process step.
type OperationCategory int

const (
	OpMachining        OperationCategory = 1
	OpHandling         OperationCategory = 2
	OpStorage          OperationCategory = 3
	OpRework           OperationCategory = 4
	OpScrap            OperationCategory = 5
	OpVisualInspection OperationCategory = 11
	OpManualInspection OperationCategory = 12
	OpAutoInspection   OperationCategory = 13
	OpQualityAudit     OperationCategory = 14
)

// ElementType is the 6M category of a PFMEA work element.
type ElementType int

const (
	ElementMan         ElementType = 1
	ElementMachine     ElementType = 2
	ElementMaterial    ElementType = 3
	ElementEnvironment ElementType = 4
	ElementMethod      ElementType = 5
	ElementMeasurement ElementType = 6
)

// CharacteristicType separates product from process characteristics.
type CharacteristicType string

const (
	CharacteristicProduct CharacteristicType = "product"
	CharacteristicProcess CharacteristicType = "process"
)

// EffectScope locates where a PFMEA failure effect is felt.
type EffectScope int

const (
	EffectInPlant EffectScope = 1
	EffectShipTo  EffectScope = 2
	EffectEndUser EffectScope = 3
)

// PFMEAActionCategory extends the DFMEA categories with design changes.
type PFMEAActionCategory int

const (
	PFMEAActionPrevention   PFMEAActionCategory = 1
	PFMEAActionDetection    PFMEAActionCategory = 2
	PFMEAActionDesignChange PFMEAActionCategory = 3
)

// LinkType is the direction of a NetworkLink in a rendered net.
type LinkType int

const (
	LinkLeft  LinkType = 1
	LinkRight LinkType = 2
)

// InterfaceType classifies a DFMEA interface.
type InterfaceType int

const (
	InterfacePhysical     InterfaceType = 1
	InterfaceEnergy       InterfaceType = 2
	InterfaceClearance    InterfaceType = 3
	InterfaceMaterial     InterfaceType = 4
	InterfaceHumanMachine InterfaceType = 5
	InterfaceData         InterfaceType = 6
)

// Interaction tells whether an interface acts one way or both ways.
type Interaction int

const (
	InteractionOneWay Interaction = 0
	InteractionTwoWay Interaction = 1
)

// InterfaceEffect is the polarity of an interface.
type InterfaceEffect int

const (
	EffectBeneficial InterfaceEffect = 0
	EffectHarmful    InterfaceEffect = 1
)

// Scope selects how much of the uploaded documents an analysis covers.
type Scope string

const (
	ScopeStructureOnly Scope = "structure_only"
	ScopeFullDoc       Scope = "full_doc"
)

var (
	functionCategories  = []FunctionCategory{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	operationCategories = []OperationCategory{OpMachining, OpHandling, OpStorage, OpRework, OpScrap, OpVisualInspection, OpManualInspection, OpAutoInspection, OpQualityAudit}
	elementTypes        = []ElementType{ElementMan, ElementMachine, ElementMaterial, ElementEnvironment, ElementMethod, ElementMeasurement}
	interfaceTypes      = []InterfaceType{InterfacePhysical, InterfaceEnergy, InterfaceClearance, InterfaceMaterial, InterfaceHumanMachine, InterfaceData}
)
