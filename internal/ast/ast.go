// Package ast defines the located abstract syntax tree produced by the
// parser and consumed by the semantic passes.
package ast

import (
	"loom/internal/source"
	"loom/internal/types"
)

// Node is any syntax node with an associated source span. The variant
// set is closed: BinaryExpr, UnaryExpr, LetBind, Cond, FnDef, FnRecDef,
// CallExpr, LitExpr and Ident.
type Node interface {
	Span() source.Span
	node()
}

// Block is an ordered sequence of nodes; its value is the value of the
// last node. A block introduces a scope.
type Block struct {
	Nodes []Node
	Loc   source.Span
}

// Span returns the span covering the whole block.
func (b *Block) Span() source.Span { return b.Loc }

// Binding is a parameter binding: a name entering scope with a declared
// type.
type Binding struct {
	Name *Ident
	Ty   source.Located[types.Ty]
	Loc  source.Span
}

// Span returns the binding span.
func (b *Binding) Span() source.Span { return b.Loc }

// Ident is an identifier occurrence, used both as a binder position and
// as a name expression. Equality of names is string equality; whether
// two occurrences denote the same binding is decided by scope
// resolution, not here.
type Ident struct {
	Name string
	Loc  source.Span
}

func (i *Ident) Span() source.Span { return i.Loc }
func (*Ident) node()               {}

// BinaryExpr applies a binary operator; the left operand is evaluated
// before the right one.
type BinaryExpr struct {
	Op    BinOp
	Left  Node
	Right Node
	Loc   source.Span
}

func (e *BinaryExpr) Span() source.Span { return e.Loc }
func (*BinaryExpr) node()               {}

// UnaryExpr applies a unary operator.
type UnaryExpr struct {
	Op      UnOp
	Operand Node
	Loc     source.Span
}

func (e *UnaryExpr) Span() source.Span { return e.Loc }
func (*UnaryExpr) node()               {}

// LetBind binds a name to the value of an expression for the rest of
// the enclosing block. The annotation is optional; without it the bound
// expression's type is synthesized.
type LetBind struct {
	Name  *Ident
	Ann   *source.Located[types.Ty]
	Value Node
	Loc   source.Span
}

func (e *LetBind) Span() source.Span { return e.Loc }
func (*LetBind) node()               {}

// Cond is a conditional: condition, then-branch and else-branch are all
// blocks.
type Cond struct {
	Cond *Block
	Then *Block
	Else *Block
	Loc  source.Span
}

func (e *Cond) Span() source.Span { return e.Loc }
func (*Cond) node()               {}

// FnDef is a function definition. Name and return annotation are
// optional; anonymous definitions are expressions.
type FnDef struct {
	Name   *Ident
	Params []*Binding
	Body   *Block
	Ret    *source.Located[types.Ty]
	Loc    source.Span
}

func (e *FnDef) Span() source.Span { return e.Loc }
func (*FnDef) node()               {}

// FnRecDef is a self-referential function definition. The name and the
// return annotation are mandatory: recursive call sites type-check
// against the declared return type before the body has been checked.
type FnRecDef struct {
	Name   *Ident
	Params []*Binding
	Body   *Block
	Ret    source.Located[types.Ty]
	Loc    source.Span
}

func (e *FnRecDef) Span() source.Span { return e.Loc }
func (*FnRecDef) node()               {}

// CallExpr applies a callee to arguments, in order.
type CallExpr struct {
	Callee Node
	Args   []Node
	Loc    source.Span
}

func (e *CallExpr) Span() source.Span { return e.Loc }
func (*CallExpr) node()               {}

// LitExpr is a literal occurrence.
type LitExpr struct {
	Value Literal
	Loc   source.Span
}

func (e *LitExpr) Span() source.Span { return e.Loc }
func (*LitExpr) node()               {}
