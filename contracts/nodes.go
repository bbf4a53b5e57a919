package contracts

import (
	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/dsl"
)

const nodeDiscriminator = "nodeType"

// ---- requirements analysis ----

type (
	// RequirementItemNode is a requirement ("requirement").
	RequirementItemNode struct {
		Envelope[RequirementExtra]
	}
	RequirementFunctionNode struct {
		Envelope[OpenExtra]
	}
	RequirementCharacteristicNode struct {
		Envelope[OpenExtra]
	}
)

func (RequirementItemNode) requirementNode()           {}
func (RequirementFunctionNode) requirementNode()       {}
func (RequirementCharacteristicNode) requirementNode() {}

var (
	requirementItemNodeSchema           = nodeSchema[RequirementItemNode]("RequirementNodeType", dsl.SchemaOf(requirementExtraSchema), false, NodeRequirement)
	requirementFunctionNodeSchema       = nodeSchema[RequirementFunctionNode]("FunctionNodeReqType", dsl.SchemaOf(openExtraSchema), false, NodeFunc)
	requirementCharacteristicNodeSchema = nodeSchema[RequirementCharacteristicNode]("CharacteristicNodeReqType", dsl.SchemaOf(openExtraSchema), false, NodeCha)
)

// RequirementNodeSchema dispatches requirements analysis nodes on their nodeType.
var RequirementNodeSchema = dsl.TaggedUnion[RequirementNode](nodeDiscriminator).
	Named("RequirementAnalysisNode").
	Case(dsl.Widen[RequirementNode](requirementItemNodeSchema), string(NodeRequirement)).
	Case(dsl.Widen[RequirementNode](requirementFunctionNodeSchema), string(NodeFunc)).
	Case(dsl.Widen[RequirementNode](requirementCharacteristicNodeSchema), string(NodeCha)).
	MustBuild()

// ---- DFMEA ----

type (
	// DFMEAComponentNode covers the system, subsystem and component levels.
	DFMEAComponentNode struct {
		Envelope[DFMEAComponentExtra]
	}
	DFMEAFunctionNode struct {
		Envelope[DFMEAFunctionExtra]
	}
	DFMEACharacteristicNode struct {
		Envelope[DFMEACharacteristicExtra]
	}
	DFMEAFailureNode struct {
		Envelope[DFMEAFailureExtra]
	}
	DFMEAActionNode struct {
		Envelope[DFMEAActionExtra]
	}
)

func (DFMEAComponentNode) dfmeaNode()      {}
func (DFMEAFunctionNode) dfmeaNode()       {}
func (DFMEACharacteristicNode) dfmeaNode() {}
func (DFMEAFailureNode) dfmeaNode()        {}
func (DFMEAActionNode) dfmeaNode()         {}

var (
	dfmeaComponentNodeSchema      = nodeSchema[DFMEAComponentNode]("DFMEAComponentNode", dsl.SchemaOf(dfmeaComponentExtraSchema), false, NodeSystem, NodeSubsystem, NodeComponent)
	dfmeaFunctionNodeSchema       = nodeSchema[DFMEAFunctionNode]("DFMEAFunctionNode", dsl.SchemaOf(dfmeaFunctionExtraSchema), false, NodeFunc)
	dfmeaCharacteristicNodeSchema = nodeSchema[DFMEACharacteristicNode]("DFMEACharacteristicNode", dsl.SchemaOf(dfmeaCharacteristicExtraSchema), true, NodeCha)
	dfmeaFailureNodeSchema        = nodeSchema[DFMEAFailureNode]("DFMEAFailureNode", dsl.SchemaOf(dfmeaFailureExtraSchema), false, NodeFailure)
	dfmeaActionNodeSchema         = nodeSchema[DFMEAActionNode]("DFMEAActionNode", dsl.SchemaOf(dfmeaActionExtraSchema), true, NodeAction)
)

// DFMEANodeSchema dispatches DFMEA nodes on their nodeType.
var DFMEANodeSchema = dsl.TaggedUnion[DFMEANode](nodeDiscriminator).
	Named("DFMEAAnalysisNode").
	Case(dsl.Widen[DFMEANode](dfmeaComponentNodeSchema), string(NodeSystem), string(NodeSubsystem), string(NodeComponent)).
	Case(dsl.Widen[DFMEANode](dfmeaFunctionNodeSchema), string(NodeFunc)).
	Case(dsl.Widen[DFMEANode](dfmeaCharacteristicNodeSchema), string(NodeCha)).
	Case(dsl.Widen[DFMEANode](dfmeaFailureNodeSchema), string(NodeFailure)).
	Case(dsl.Widen[DFMEANode](dfmeaActionNodeSchema), string(NodeAction)).
	MustBuild()

// ---- PFMEA ----

type (
	PFMEAItemNode struct {
		Envelope[OpenExtra]
	}
	PFMEAStepNode struct {
		Envelope[PFMEAStepExtra]
	}

	// PFMEAStep2Node is a sub-step of a process step.
	PFMEAStep2Node struct {
		Envelope[PFMEAStep2Extra]
	}

	// PFMEAElementNode is a 6M work element; its extra is required.
	PFMEAElementNode struct {
		Envelope[PFMEAElementExtra]
	}
	PFMEAFunctionNode struct {
		Envelope[OpenExtra]
	}
	PFMEACharacteristicNode struct {
		Envelope[PFMEACharacteristicExtra]
	}
	PFMEAModeNode struct {
		Envelope[OpenExtra]
	}
	PFMEAEffectNode struct {
		Envelope[PFMEAEffectExtra]
	}
	PFMEACauseNode struct {
		Envelope[PFMEACauseExtra]
	}
	PFMEAActionNode struct {
		Envelope[PFMEAActionExtra]
	}
)

func (PFMEAItemNode) pfmeaNode()           {}
func (PFMEAStepNode) pfmeaNode()           {}
func (PFMEAStep2Node) pfmeaNode()          {}
func (PFMEAElementNode) pfmeaNode()        {}
func (PFMEAFunctionNode) pfmeaNode()       {}
func (PFMEACharacteristicNode) pfmeaNode() {}
func (PFMEAModeNode) pfmeaNode()           {}
func (PFMEAEffectNode) pfmeaNode()         {}
func (PFMEACauseNode) pfmeaNode()          {}
func (PFMEAActionNode) pfmeaNode()         {}

var (
	pfmeaItemNodeSchema           = nodeSchema[PFMEAItemNode]("PFMEAItemNode", dsl.SchemaOf(openExtraSchema), false, NodeItem)
	pfmeaStepNodeSchema           = nodeSchema[PFMEAStepNode]("PFMEAStepNode", dsl.SchemaOf(pfmeaStepExtraSchema), false, NodeStep)
	pfmeaStep2NodeSchema          = nodeSchema[PFMEAStep2Node]("PFMEAStep2Node", dsl.SchemaOf(pfmeaStep2ExtraSchema), false, NodeStep2)
	pfmeaElementNodeSchema        = nodeSchema[PFMEAElementNode]("PFMEAElementNode", dsl.SchemaOf(pfmeaElementExtraSchema), true, NodeElem)
	pfmeaFunctionNodeSchema       = nodeSchema[PFMEAFunctionNode]("PFMEAFunctionNode", dsl.SchemaOf(openExtraSchema), false, NodeFunc)
	pfmeaCharacteristicNodeSchema = nodeSchema[PFMEACharacteristicNode]("PFMEACharacteristicNode", dsl.SchemaOf(pfmeaCharacteristicExtraSchema), true, NodeCha)
	pfmeaModeNodeSchema           = nodeSchema[PFMEAModeNode]("PFMEAModeNode", dsl.SchemaOf(openExtraSchema), false, NodeMode)
	pfmeaEffectNodeSchema         = nodeSchema[PFMEAEffectNode]("PFMEAEffectNode", dsl.SchemaOf(pfmeaEffectExtraSchema), true, NodeEffect)
	pfmeaCauseNodeSchema          = nodeSchema[PFMEACauseNode]("PFMEACauseNode", dsl.SchemaOf(pfmeaCauseExtraSchema), true, NodeCause)
	pfmeaActionNodeSchema         = nodeSchema[PFMEAActionNode]("PFMEAActionNode", dsl.SchemaOf(pfmeaActionExtraSchema), true, NodeAction)
)

// PFMEANodeSchema dispatches PFMEA nodes on their nodeType.
var PFMEANodeSchema = dsl.TaggedUnion[PFMEANode](nodeDiscriminator).
	Named("PFMEAAnalysisNode").
	Case(dsl.Widen[PFMEANode](pfmeaItemNodeSchema), string(NodeItem)).
	Case(dsl.Widen[PFMEANode](pfmeaStepNodeSchema), string(NodeStep)).
	Case(dsl.Widen[PFMEANode](pfmeaStep2NodeSchema), string(NodeStep2)).
	Case(dsl.Widen[PFMEANode](pfmeaElementNodeSchema), string(NodeElem)).
	Case(dsl.Widen[PFMEANode](pfmeaFunctionNodeSchema), string(NodeFunc)).
	Case(dsl.Widen[PFMEANode](pfmeaCharacteristicNodeSchema), string(NodeCha)).
	Case(dsl.Widen[PFMEANode](pfmeaModeNodeSchema), string(NodeMode)).
	Case(dsl.Widen[PFMEANode](pfmeaEffectNodeSchema), string(NodeEffect)).
	Case(dsl.Widen[PFMEANode](pfmeaCauseNodeSchema), string(NodeCause)).
	Case(dsl.Widen[PFMEANode](pfmeaActionNodeSchema), string(NodeAction)).
	MustBuild()

// NodeTags returns the discriminator values accepted by a node union.
func NodeTags[U any](s fmeaskema.Schema[U]) []string {
	if t, ok := s.(interface{ Tags() []string }); ok {
		return t.Tags()
	}
	return nil
}
