package ast

// Visitor is implemented by whole-program passes. One method per node
// variant plus methods for the compound shapes (blocks, bindings).
//
// Every method has a Super counterpart performing the structural
// recursive descent. A pass overrides only the methods relevant to its
// concern and calls the Super function explicitly to keep descending;
// not calling it prunes the subtree, which is a deliberate technique,
// not a default.
//
// Passes keep their state in their own value. The framework holds no
// shared mutable state.
type Visitor interface {
	VisitBinaryOp(n *BinaryExpr)
	VisitUnaryOp(n *UnaryExpr)
	VisitLetBind(n *LetBind)
	VisitCond(n *Cond)
	VisitFnDef(n *FnDef)
	VisitFnRecDef(n *FnRecDef)
	VisitCall(n *CallExpr)
	VisitLiteral(n *LitExpr)
	VisitName(n *Ident)
	VisitBlock(b *Block)
	VisitBinding(b *Binding)
}

// Visit dispatches n to the visitor method for its variant.
func Visit(v Visitor, n Node) {
	switch n := n.(type) {
	case *BinaryExpr:
		v.VisitBinaryOp(n)
	case *UnaryExpr:
		v.VisitUnaryOp(n)
	case *LetBind:
		v.VisitLetBind(n)
	case *Cond:
		v.VisitCond(n)
	case *FnDef:
		v.VisitFnDef(n)
	case *FnRecDef:
		v.VisitFnRecDef(n)
	case *CallExpr:
		v.VisitCall(n)
	case *LitExpr:
		v.VisitLiteral(n)
	case *Ident:
		v.VisitName(n)
	default:
		panic("ast: unknown node variant")
	}
}

// SuperBinaryOp descends into both operands, left first.
func SuperBinaryOp(v Visitor, n *BinaryExpr) {
	Visit(v, n.Left)
	Visit(v, n.Right)
}

// SuperUnaryOp descends into the operand.
func SuperUnaryOp(v Visitor, n *UnaryExpr) {
	Visit(v, n.Operand)
}

// SuperLetBind descends into the bound expression. The binder name is
// a binding position, not a use, so it is not visited as a name.
func SuperLetBind(v Visitor, n *LetBind) {
	Visit(v, n.Value)
}

// SuperCond descends into the three blocks in evaluation order.
func SuperCond(v Visitor, n *Cond) {
	v.VisitBlock(n.Cond)
	v.VisitBlock(n.Then)
	v.VisitBlock(n.Else)
}

// SuperFnDef descends into the parameter bindings and the body.
func SuperFnDef(v Visitor, n *FnDef) {
	for _, p := range n.Params {
		v.VisitBinding(p)
	}
	v.VisitBlock(n.Body)
}

// SuperFnRecDef descends into the parameter bindings and the body.
func SuperFnRecDef(v Visitor, n *FnRecDef) {
	for _, p := range n.Params {
		v.VisitBinding(p)
	}
	v.VisitBlock(n.Body)
}

// SuperCall descends into the callee, then the arguments in order.
func SuperCall(v Visitor, n *CallExpr) {
	Visit(v, n.Callee)
	for _, arg := range n.Args {
		Visit(v, arg)
	}
}

// SuperLiteral is a leaf.
func SuperLiteral(Visitor, *LitExpr) {}

// SuperName is a leaf.
func SuperName(Visitor, *Ident) {}

// SuperBlock descends into the block's nodes in order.
func SuperBlock(v Visitor, b *Block) {
	for _, n := range b.Nodes {
		Visit(v, n)
	}
}

// SuperBinding is a leaf: a binder name is not a name use.
func SuperBinding(Visitor, *Binding) {}

// Base provides the default descent for every Visitor method. A pass
// embeds Base, sets Self to itself, and overrides what it needs; the
// defaults then dispatch child visits through the full pass again.
type Base struct {
	Self Visitor
}

func (b *Base) VisitBinaryOp(n *BinaryExpr) { SuperBinaryOp(b.Self, n) }
func (b *Base) VisitUnaryOp(n *UnaryExpr)   { SuperUnaryOp(b.Self, n) }
func (b *Base) VisitLetBind(n *LetBind)     { SuperLetBind(b.Self, n) }
func (b *Base) VisitCond(n *Cond)           { SuperCond(b.Self, n) }
func (b *Base) VisitFnDef(n *FnDef)         { SuperFnDef(b.Self, n) }
func (b *Base) VisitFnRecDef(n *FnRecDef)   { SuperFnRecDef(b.Self, n) }
func (b *Base) VisitCall(n *CallExpr)       { SuperCall(b.Self, n) }
func (b *Base) VisitLiteral(n *LitExpr)     { SuperLiteral(b.Self, n) }
func (b *Base) VisitName(n *Ident)          { SuperName(b.Self, n) }
func (b *Base) VisitBlock(blk *Block)       { SuperBlock(b.Self, blk) }
func (b *Base) VisitBinding(bd *Binding)    { SuperBinding(b.Self, bd) }
