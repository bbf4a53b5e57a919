package contracts

import (
	"github.com/reoring/fmeaskema"
	"github.com/reoring/fmeaskema/dsl"
)

// Envelope is the shape shared by every analysis node. X is the node type's
// extra payload.
type Envelope[X any] struct {
	UUID        int64    `json:"uuid"`
	ParentID    int64    `json:"parentId"` // RootParentID for the root
	NodeType    NodeType `json:"nodeType"`
	Description string   `json:"description"`
	Extra       X        `json:"extra"`
}

// Header is the envelope without its extra payload.
type Header struct {
	UUID        int64
	ParentID    int64
	NodeType    NodeType
	Description string
}

// Header returns the identity, hierarchy pointer and tag of the node.
func (e Envelope[X]) Header() Header {
	return Header{UUID: e.UUID, ParentID: e.ParentID, NodeType: e.NodeType, Description: e.Description}
}

// ExtraPayload returns the typed extra payload as any.
func (e Envelope[X]) ExtraPayload() any { return e.Extra }

// Node is implemented by every concrete node type.
type Node interface {
	Header() Header
	ExtraPayload() any
}

// RequirementNode is the closed set of requirements-analysis nodes.
type RequirementNode interface {
	Node
	requirementNode()
}

// DFMEANode is the closed set of DFMEA nodes.
type DFMEANode interface {
	Node
	dfmeaNode()
}

// PFMEANode is the closed set of PFMEA nodes.
type PFMEANode interface {
	Node
	pfmeaNode()
}

// nodeSchema binds the envelope of one node variant. The record itself
// follows the warn policy; its extra payload keeps undeclared keys. An
// absent, optional extra is parsed from {} so its defaults apply.
func nodeSchema[T any](model string, extra dsl.AnyAdapter, extraRequired bool, tags ...NodeType) fmeaskema.Schema[T] {
	b := dsl.Object().Named(model).
		Field("uuid", dsl.Int64Of()).Alias("id").Required().
		Field("parentId", dsl.Int64Of()).Required().
		Field("nodeType", dsl.StringEnumOf(tags...)).Required().
		Field("description", dsl.SchemaOf[string](dsl.String())).Required()
	if extraRequired {
		b = b.Field("extra", extra).Required()
	} else {
		b = b.Field("extra", extra).Default(map[string]any{})
	}
	return dsl.MustBind[T](b.UnknownWarn())
}
