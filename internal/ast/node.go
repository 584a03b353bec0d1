package ast

import (
	"fmt"

	"eidos/internal/source"
	"eidos/internal/symbols"
	"eidos/internal/types"
)

// Kind enumerates node kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindLiteral
	KindIdent
	KindUnary
	KindBinary
	KindIf
	KindBlock
	KindLet
	KindParam
	KindFunc
	KindCall
	KindAssign
	KindWhile
	KindReturn
	KindTypeDef
	KindField
	KindVariant
	KindEmbedded
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindLiteral:  "literal",
	KindIdent:    "ident",
	KindUnary:    "unary",
	KindBinary:   "binary",
	KindIf:       "if",
	KindBlock:    "block",
	KindLet:      "let",
	KindParam:    "param",
	KindFunc:     "func",
	KindCall:     "call",
	KindAssign:   "assign",
	KindWhile:    "while",
	KindReturn:   "return",
	KindTypeDef:  "typedef",
	KindField:    "field",
	KindVariant:  "variant",
	KindEmbedded: "embedded",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// TypeState records how a node's type annotation was obtained.
type TypeState uint8

const (
	TypeUnknown  TypeState = iota // not yet checked
	TypeResolved                  // inferred by the checker
	TypeExplicit                  // taken from a source annotation
)

// TypeInfo is the type annotation slot filled by the type checker.
type TypeInfo struct {
	State TypeState
	Type  types.TypeID
}

// Data is the kind-specific payload of a node.
type Data interface {
	Kind() Kind
	// Children lists child node IDs in field declaration order.
	Children() []NodeID
	clone() Data
}

// Node is a single tree node. Children are owned by exactly one parent and are
// referenced by ID.
type Node struct {
	ID     NodeID
	Loc    source.Location
	Type   TypeInfo
	Symbol symbols.SymbolID // bound symbol, filled by the analyzer
	Data   Data
}

// Kind returns the node kind, or KindInvalid for an empty node.
func (n *Node) Kind() Kind {
	if n == nil || n.Data == nil {
		return KindInvalid
	}
	return n.Data.Kind()
}

func (n *Node) clone() Node {
	out := *n
	if n.Data != nil {
		out.Data = n.Data.clone()
	}
	return out
}
