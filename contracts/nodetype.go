package contracts

// NodeType is the discriminator tag carried in every analysis node's
// "nodeType" field. Each domain accepts its own subset.
type NodeType string

const (
	NodeAction      NodeType = "action"
	NodeCause       NodeType = "cause"
	NodeCha         NodeType = "cha"
	NodeComponent   NodeType = "component"
	NodeEffect      NodeType = "effect"
	NodeElem        NodeType = "elem"
	NodeFailure     NodeType = "failure"
	NodeFunc        NodeType = "func"
	NodeItem        NodeType = "item"
	NodeMode        NodeType = "mode"
	NodeRequirement NodeType = "requirement"
	NodeStep        NodeType = "step"
	NodeStep2       NodeType = "step2"
	NodeSubsystem   NodeType = "subsystem"
	NodeSystem      NodeType = "system"
)

var allNodeTypes = []NodeType{
	NodeAction, NodeCause, NodeCha, NodeComponent, NodeEffect,
	NodeElem, NodeFailure, NodeFunc, NodeItem, NodeMode,
	NodeRequirement, NodeStep, NodeStep2, NodeSubsystem, NodeSystem,
}

// AllNodeTypes returns every tag in alphabetical order.
func AllNodeTypes() []NodeType { return append([]NodeType(nil), allNodeTypes...) }

// Valid reports whether t is one of the known tags, in any domain.
func (t NodeType) Valid() bool {
	for _, n := range allNodeTypes {
		if n == t {
			return true
		}
	}
	return false
}

// RootParentID is the parentId conventionally given to a tree's root node.
// It is documented here and not enforced.
const RootParentID int64 = -1
