// Package sema type-checks MIR terms.
//
// Checking is syntax-directed and bidirectional: synth derives a type
// from a term, check verifies a term against an expected type. There
// is no unification and no recovery; the first error is terminal for
// the whole program.
package sema

import (
	"loom/internal/ast"
	"loom/internal/mir"
	"loom/internal/source"
	"loom/internal/types"
)

// Check assigns a type to the program or rejects it.
func Check(t mir.Term) (types.Ty, *types.Error) {
	c := &checker{}
	ty, err := c.synth(t)
	if err != nil {
		return nil, err
	}
	if len(c.scope) != 0 {
		// A pass bug, never a user error.
		panic("sema: scope stack not empty after checking")
	}
	return ty, nil
}

type checker struct {
	// scope is the typing context, innermost binding last. Var indices
	// count from the top.
	scope []types.Binding
}

func (c *checker) push(b types.Binding) {
	c.scope = append(c.scope, b)
}

func (c *checker) pop() {
	c.scope = c.scope[:len(c.scope)-1]
}

func (c *checker) lookup(index int) (types.Ty, bool) {
	pos := len(c.scope) - 1 - index
	if pos < 0 || pos >= len(c.scope) {
		return nil, false
	}
	return c.scope[pos].Ty, true
}

// check verifies t against expected and reports the found type at t's
// span on mismatch.
func (c *checker) check(t mir.Term, expected types.Ty) *types.Error {
	// An empty block has no synthesizable type but its value is unit.
	if empty, ok := t.(*mir.Empty); ok {
		if types.Equal(expected, types.Unit{}) {
			return nil
		}
		return types.NewUnexpected(expected, source.At[types.Ty](types.Unit{}, empty.Loc))
	}

	found, err := c.synth(t)
	if err != nil {
		return err
	}
	if !types.Equal(expected, found) {
		return types.NewUnexpected(expected, source.At(found, t.Span()))
	}
	return nil
}

func (c *checker) synth(t mir.Term) (types.Ty, *types.Error) {
	switch t := t.(type) {
	case *mir.Lit:
		return litTy(t.Value), nil

	case *mir.Var:
		ty, ok := c.lookup(t.Index)
		if !ok {
			return nil, types.NewUnbound(t.Name, t.Loc)
		}
		return ty, nil

	case *mir.UnOp:
		return c.synthUnOp(t)

	case *mir.BinOp:
		return c.synthBinOp(t)

	case *mir.Let:
		var bound types.Ty
		if t.Ann != nil {
			if err := c.check(t.Value, t.Ann.Item); err != nil {
				return nil, err
			}
			bound = t.Ann.Item
		} else {
			ty, err := c.synth(t.Value)
			if err != nil {
				return nil, err
			}
			bound = ty
		}
		c.push(types.Binding{Name: t.Name, Ty: bound})
		bodyTy, err := c.synth(t.Body)
		c.pop()
		return bodyTy, err

	case *mir.Cond:
		if err := c.check(t.If, types.Bool{}); err != nil {
			return nil, err
		}
		thenTy, err := c.synth(t.Then)
		if err != nil {
			return nil, err
		}
		// Both branches must agree on one type.
		if err := c.check(t.Else, thenTy); err != nil {
			return nil, err
		}
		return thenTy, nil

	case *mir.Fn:
		return c.synthFn(t)

	case *mir.Call:
		return c.synthCall(t)

	case *mir.Empty:
		return nil, types.NewMissing(t.Loc)

	default:
		panic("sema: unknown MIR term variant")
	}
}

func litTy(l ast.Literal) types.Ty {
	switch l.Kind {
	case ast.LitBool:
		return types.Bool{}
	case ast.LitUnit:
		return types.Unit{}
	default:
		return types.Int{}
	}
}

func (c *checker) synthUnOp(t *mir.UnOp) (types.Ty, *types.Error) {
	switch t.Op {
	case ast.OpNeg:
		if err := c.check(t.Operand, types.Int{}); err != nil {
			return nil, err
		}
		return types.Int{}, nil
	case ast.OpNot:
		if err := c.check(t.Operand, types.Bool{}); err != nil {
			return nil, err
		}
		return types.Bool{}, nil
	default:
		panic("sema: unknown unary operator")
	}
}

// synthBinOp checks the operands against the operator's required
// signature and synthesizes the result type.
func (c *checker) synthBinOp(t *mir.BinOp) (types.Ty, *types.Error) {
	switch t.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpRem,
		ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShr, ast.OpShl:
		if err := c.check(t.Left, types.Int{}); err != nil {
			return nil, err
		}
		if err := c.check(t.Right, types.Int{}); err != nil {
			return nil, err
		}
		return types.Int{}, nil

	case ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte:
		if err := c.check(t.Left, types.Int{}); err != nil {
			return nil, err
		}
		if err := c.check(t.Right, types.Int{}); err != nil {
			return nil, err
		}
		return types.Bool{}, nil

	case ast.OpEq, ast.OpNeq:
		// Equality works on any basic type but never on functions.
		leftTy, err := c.synth(t.Left)
		if err != nil {
			return nil, err
		}
		if types.IsArrow(leftTy) {
			return nil, types.NewExpectedBasic(source.At(leftTy, t.Left.Span()))
		}
		if err := c.check(t.Right, leftTy); err != nil {
			return nil, err
		}
		return types.Bool{}, nil

	case ast.OpAnd, ast.OpOr:
		if err := c.check(t.Left, types.Bool{}); err != nil {
			return nil, err
		}
		if err := c.check(t.Right, types.Bool{}); err != nil {
			return nil, err
		}
		return types.Bool{}, nil

	default:
		panic("sema: unknown binary operator")
	}
}

// synthFn checks the body against the declared return type, or
// synthesizes it when no annotation exists, with the parameters (and,
// for recursive functions, the function's own arrow type) in scope.
func (c *checker) synthFn(t *mir.Fn) (types.Ty, *types.Error) {
	depth := 0
	if t.Rec {
		// The declared return type is trusted here, not re-inferred:
		// pre-binding the arrow type is what lets recursive call sites
		// check before the body has been checked.
		if t.Ret == nil {
			return nil, types.NewMissing(t.Loc)
		}
		c.push(types.Binding{Name: t.Name, Ty: fnTy(t.Params, t.Ret.Item)})
		depth++
	}
	for _, p := range t.Params {
		c.push(types.Binding{Name: p.Name, Ty: p.Ty.Item})
		depth++
	}

	var ret types.Ty
	var err *types.Error
	if t.Ret != nil {
		ret = t.Ret.Item
		err = c.check(t.Body, ret)
	} else {
		ret, err = c.synth(t.Body)
	}
	for range depth {
		c.pop()
	}
	if err != nil {
		return nil, err
	}
	return fnTy(t.Params, ret), nil
}

// synthCall consumes one arrow per argument. A non-function callee and
// an argument beyond the callee's arity surface at different spans.
func (c *checker) synthCall(t *mir.Call) (types.Ty, *types.Error) {
	calleeTy, err := c.synth(t.Callee)
	if err != nil {
		return nil, err
	}
	if !types.IsArrow(calleeTy) {
		return nil, types.NewExpectedFn(source.At(calleeTy, t.Callee.Span()))
	}
	for _, arg := range t.Args {
		arrow, ok := calleeTy.(*types.Arrow)
		if !ok {
			return nil, types.NewExpectedFn(source.At(calleeTy, arg.Span()))
		}
		if err := c.check(arg, arrow.Dom); err != nil {
			return nil, err
		}
		calleeTy = arrow.Cod
	}
	return calleeTy, nil
}

// fnTy folds the parameter types into a right-nested arrow chain.
func fnTy(params []mir.Param, ret types.Ty) types.Ty {
	ty := ret
	for i := len(params) - 1; i >= 0; i-- {
		ty = &types.Arrow{Dom: params[i].Ty.Item, Cod: ty}
	}
	return ty
}
