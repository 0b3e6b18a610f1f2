// Package lir is the evaluation representation. Terms carry no spans
// and no type annotations; names survive only where the printer needs
// them. Every variable is a de Bruijn index into the runtime
// environment.
package lir

import "loom/internal/ast"

// Term is a closed-world evaluation term.
type Term interface {
	term()
}

// Lit is a literal value.
type Lit struct {
	Value ast.Literal
}

// Var references an enclosing binder by distance, innermost first.
type Var struct {
	Name  string
	Index int
}

// UnOp applies a unary operator.
type UnOp struct {
	Op      ast.UnOp
	Operand Term
}

// BinOp applies a binary operator. Logic operators short-circuit, so
// Right must not be evaluated eagerly for them.
type BinOp struct {
	Op    ast.BinOp
	Left  Term
	Right Term
}

// Let binds Value as index 0 inside Body.
type Let struct {
	Name  string
	Value Term
	Body  Term
}

// Cond evaluates Then or Else depending on If.
type Cond struct {
	If   Term
	Then Term
	Else Term
}

// Fn is an n-ary abstraction. When Rec is set the closure's own value
// occupies the environment slot just beneath the parameters.
type Fn struct {
	Name  string
	Rec   bool
	Arity int
	Body  Term
}

// Call applies a callee to arguments, left to right.
type Call struct {
	Callee Term
	Args   []Term
}

func (*Lit) term()   {}
func (*Var) term()   {}
func (*UnOp) term()  {}
func (*BinOp) term() {}
func (*Let) term()   {}
func (*Cond) term()  {}
func (*Fn) term()    {}
func (*Call) term()  {}
