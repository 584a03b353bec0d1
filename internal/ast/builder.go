package ast

import (
	"eidos/internal/source"
	"eidos/internal/types"
)

// Builder constructs nodes in a Program. Every constructor takes child IDs
// that must already exist.
type Builder struct {
	Prog *Program
	loc  source.Location
}

func NewBuilder(prog *Program) *Builder {
	return &Builder{Prog: prog}
}

// At returns a builder placing its nodes at line:col. Arguments are built
// by the receiver, so b.At(3, 1).Let("x", nil, b.Int(1)) puts only the let
// at 3:1.
func (b *Builder) At(line, col uint32) *Builder {
	return &Builder{Prog: b.Prog, loc: source.At(b.Prog.File, line, col)}
}

func (b *Builder) insert(data Data) NodeID {
	loc := b.loc
	if !loc.IsKnown() {
		loc = source.Location{File: b.Prog.File}
	}
	return b.Prog.Insert(loc, data)
}

func (b *Builder) Int(v int64) NodeID { return b.insert(&Literal{Lit: LitInt, Int: v}) }
func (b *Builder) Float(v float64) NodeID { return b.insert(&Literal{Lit: LitFloat, Float: v}) }
func (b *Builder) Bool(v bool) NodeID { return b.insert(&Literal{Lit: LitBool, Bool: v}) }
func (b *Builder) Char(v rune) NodeID { return b.insert(&Literal{Lit: LitChar, Char: v}) }
func (b *Builder) Str(v string) NodeID { return b.insert(&Literal{Lit: LitString, Str: v}) }
func (b *Builder) Unit() NodeID { return b.insert(&Literal{Lit: LitUnit}) }
func (b *Builder) Array(elems ...NodeID) NodeID {
	return b.insert(&Literal{Lit: LitArray, Elems: elems})
}

func (b *Builder) Ident(name string) NodeID { return b.insert(&Ident{Name: name}) }

func (b *Builder) Unary(op UnaryOp, operand NodeID) NodeID {
	return b.insert(&Unary{Op: op, Operand: operand})
}

func (b *Builder) Binary(op BinaryOp, left, right NodeID) NodeID {
	return b.insert(&Binary{Op: op, Left: left, Right: right})
}

// If builds a conditional; pass NoNodeID for a missing else branch.
func (b *Builder) If(cond, then, els NodeID) NodeID {
	return b.insert(&If{Cond: cond, Then: then, Else: els})
}

// Block builds a block; pass NoNodeID as tail when there is no trailing expression.
func (b *Builder) Block(tail NodeID, stmts ...NodeID) NodeID {
	return b.insert(&Block{Stmts: stmts, Tail: tail})
}

func (b *Builder) Let(name string, annot *TypeExpr, init NodeID) NodeID {
	return b.insert(&Let{Name: name, Annot: annot, Init: init})
}

func (b *Builder) Param(name string, annot *TypeExpr) NodeID {
	return b.insert(&Param{Name: name, Annot: annot})
}

func (b *Builder) Func(name string, params []NodeID, result *TypeExpr, body NodeID) NodeID {
	return b.insert(&Func{Name: name, Params: params, Result: result, Body: body})
}

func (b *Builder) Call(callee NodeID, args ...NodeID) NodeID {
	return b.insert(&Call{Callee: callee, Args: args})
}

func (b *Builder) Assign(target, value NodeID) NodeID {
	return b.insert(&Assign{Target: target, Value: value})
}

func (b *Builder) While(cond, body NodeID) NodeID {
	return b.insert(&While{Cond: cond, Body: body})
}

func (b *Builder) Return(value NodeID) NodeID {
	return b.insert(&Return{Value: value})
}

func (b *Builder) Struct(name string, fields []NodeID, methods ...NodeID) NodeID {
	return b.insert(&TypeDef{Form: TypeStruct, Name: name, Members: fields, Methods: methods})
}

func (b *Builder) Enum(name string, variants ...NodeID) NodeID {
	return b.insert(&TypeDef{Form: TypeEnum, Name: name, Members: variants})
}

func (b *Builder) Alias(name string, target *TypeExpr) NodeID {
	return b.insert(&TypeDef{Form: TypeAlias, Name: name, Alias: target})
}

func (b *Builder) Field(name string, annot *TypeExpr, mutable bool) NodeID {
	return b.insert(&Field{Name: name, Annot: annot, Mutable: mutable})
}

func (b *Builder) Variant(name string, elems ...TypeExpr) NodeID {
	v := &Variant{Name: name}
	if len(elems) > 0 {
		v.Payload = types.PayloadTuple
		v.Elems = elems
	}
	return b.insert(v)
}

func (b *Builder) Embedded(extension, content string) NodeID {
	return b.insert(&Embedded{Extension: extension, Content: content})
}

// Root appends id to the program roots and returns it.
func (b *Builder) Root(id NodeID) NodeID {
	b.Prog.AddRoot(id)
	return id
}
