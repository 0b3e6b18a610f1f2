package lir

import (
	"loom/internal/ast"
	"loom/internal/mir"
)

// FromMIR strips a type-checked term down to its evaluation form. The
// pass is total: it cannot fail and two runs over the same input
// produce identical trees.
func FromMIR(t mir.Term) Term {
	switch n := t.(type) {
	case *mir.Lit:
		return &Lit{Value: n.Value}

	case *mir.Var:
		return &Var{Name: n.Name, Index: n.Index}

	case *mir.UnOp:
		return &UnOp{Op: n.Op, Operand: FromMIR(n.Operand)}

	case *mir.BinOp:
		return &BinOp{Op: n.Op, Left: FromMIR(n.Left), Right: FromMIR(n.Right)}

	case *mir.Let:
		return &Let{Name: n.Name, Value: FromMIR(n.Value), Body: FromMIR(n.Body)}

	case *mir.Cond:
		return &Cond{If: FromMIR(n.If), Then: FromMIR(n.Then), Else: FromMIR(n.Else)}

	case *mir.Fn:
		return &Fn{Name: n.Name, Rec: n.Rec, Arity: len(n.Params), Body: FromMIR(n.Body)}

	case *mir.Call:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = FromMIR(a)
		}
		return &Call{Callee: FromMIR(n.Callee), Args: args}

	case *mir.Empty:
		// An empty block runs to unit.
		return &Lit{Value: ast.UnitLit()}

	default:
		panic("lir: unknown MIR term variant")
	}
}
