// Package mir is the mid-level representation: blocks are desugared
// into let-chains, named definitions are normalized into one function
// term shape, and every name occurrence is resolved to a de Bruijn
// index. Each lowering builds a fresh tree; nothing aliases back into
// the AST.
package mir

import (
	"loom/internal/ast"
	"loom/internal/source"
	"loom/internal/types"
)

// Term is a MIR term. The variant set is closed.
type Term interface {
	Span() source.Span
	term()
}

// Lit is a literal.
type Lit struct {
	Value ast.Literal
	Loc   source.Span
}

func (t *Lit) Span() source.Span { return t.Loc }
func (*Lit) term()               {}

// Var is a resolved name occurrence. Index is the de Bruijn index:
// the number of binders between the occurrence and its binder,
// innermost first. Name is kept for diagnostics only.
type Var struct {
	Name  string
	Index int
	Loc   source.Span
}

func (t *Var) Span() source.Span { return t.Loc }
func (*Var) term()               {}

// UnOp applies a unary operator.
type UnOp struct {
	Op      ast.UnOp
	Operand Term
	Loc     source.Span
}

func (t *UnOp) Span() source.Span { return t.Loc }
func (*UnOp) term()               {}

// BinOp applies a binary operator; Left evaluates before Right.
type BinOp struct {
	Op    ast.BinOp
	Left  Term
	Right Term
	Loc   source.Span
}

func (t *BinOp) Span() source.Span { return t.Loc }
func (*BinOp) term()               {}

// Let binds one value for the rest of a block. Bare expression
// statements become wildcard lets whose binding is never referenced.
// The annotation, when present, is checked against the bound value.
type Let struct {
	Name  string
	Ann   *source.Located[types.Ty]
	Value Term
	Body  Term
	Loc   source.Span
}

func (t *Let) Span() source.Span { return t.Loc }
func (*Let) term()               {}

// Cond is a conditional with already-flattened branch terms.
type Cond struct {
	If   Term
	Then Term
	Else Term
	Loc  source.Span
}

func (t *Cond) Span() source.Span { return t.Loc }
func (*Cond) term()               {}

// Param is a typed function parameter.
type Param struct {
	Name string
	Ty   source.Located[types.Ty]
}

// Fn is the single normalized function shape. Plain and recursive
// surface definitions both lower here; Rec records the scope
// analysis verdict, so a declared-recursive function whose body never
// references itself unshadowed lowers with Rec=false. When Rec is
// true the function's own name is bound, innermost before the
// parameters, inside the body.
type Fn struct {
	Name   string // empty for anonymous functions
	Rec    bool
	Params []Param
	Ret    *source.Located[types.Ty]
	Body   Term
	Loc    source.Span
}

func (t *Fn) Span() source.Span { return t.Loc }
func (*Fn) term()               {}

// Call applies a callee to arguments in order.
type Call struct {
	Callee Term
	Args   []Term
	Loc    source.Span
}

func (t *Call) Span() source.Span { return t.Loc }
func (*Call) term()               {}

// Empty is the lowering of an empty block. Its runtime value is unit
// but its type is deliberately not synthesizable: a binder whose only
// initializer is an empty block needs an annotation.
type Empty struct {
	Loc source.Span
}

func (t *Empty) Span() source.Span { return t.Loc }
func (*Empty) term()               {}
