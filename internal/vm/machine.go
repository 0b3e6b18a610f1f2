package vm

import (
	"math/big"

	"fortio.org/safecast"

	"loom/internal/ast"
	"loom/internal/lir"
)

// Machine is a tree-walking evaluator. The environment is a stack of
// values addressed by de Bruijn index: index 0 is the most recent
// binder.
type Machine struct {
	env []Value
}

// New returns a machine with an empty environment.
func New() *Machine {
	return &Machine{}
}

// Evaluate runs a term to a value. Runtime faults surface as a
// non-nil *Fault; any other panic propagates.
func (m *Machine) Evaluate(t lir.Term) (v Value, err *Fault) {
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(*Fault)
			if !ok {
				panic(r)
			}
			v, err = nil, f
		}
	}()
	return m.eval(t), nil
}

func (m *Machine) push(v Value) {
	m.env = append(m.env, v)
}

func (m *Machine) popN(n int) {
	m.env = m.env[:len(m.env)-n]
}

func (m *Machine) lookup(index int) Value {
	return m.env[len(m.env)-1-index]
}

func (m *Machine) eval(t lir.Term) Value {
	switch n := t.(type) {
	case *lir.Lit:
		return LitValue{Lit: n.Value}

	case *lir.Var:
		return m.lookup(n.Index)

	case *lir.UnOp:
		return evalUnOp(n.Op, m.eval(n.Operand))

	case *lir.BinOp:
		return m.evalBinOp(n)

	case *lir.Let:
		value := m.eval(n.Value)
		m.push(value)
		result := m.eval(n.Body)
		m.popN(1)
		return result

	case *lir.Cond:
		if asBool(m.eval(n.If)) {
			return m.eval(n.Then)
		}
		return m.eval(n.Else)

	case *lir.Fn:
		// Snapshot: the enclosing frame may be popped before the
		// closure is applied.
		env := make([]Value, len(m.env))
		copy(env, m.env)
		return &Closure{fn: n, env: env}

	case *lir.Call:
		callee := m.eval(n.Callee)
		for _, arg := range n.Args {
			callee = m.apply(callee, m.eval(arg))
		}
		return callee

	default:
		panic("vm: unknown term variant")
	}
}

// apply feeds one argument to a closure. Under-application returns a
// new closure holding the argument; the saturating argument enters the
// body with the environment laid out as it was during lowering:
// captured values, then the closure itself for recursive functions,
// then the parameters in order.
func (m *Machine) apply(callee, arg Value) Value {
	c, ok := callee.(*Closure)
	if !ok {
		// Unreachable after type checking.
		panic("vm: application of a non-function value")
	}

	applied := make([]Value, len(c.applied), len(c.applied)+1)
	copy(applied, c.applied)
	applied = append(applied, arg)
	if len(applied) < c.fn.Arity {
		return &Closure{fn: c.fn, env: c.env, applied: applied}
	}

	frame := len(c.env)
	if c.fn.Rec {
		frame++
	}
	env := make([]Value, 0, frame+len(applied))
	env = append(env, c.env...)
	if c.fn.Rec {
		// The unapplied closure; recursive calls re-supply arguments.
		env = append(env, &Closure{fn: c.fn, env: c.env})
	}
	env = append(env, applied...)

	saved := m.env
	m.env = env
	result := m.eval(c.fn.Body)
	m.env = saved
	return result
}

func (m *Machine) evalBinOp(n *lir.BinOp) Value {
	// Logic operators short-circuit; everything else evaluates left
	// then right.
	switch n.Op {
	case ast.OpAnd:
		if !asBool(m.eval(n.Left)) {
			return LitValue{Lit: ast.BoolLit(false)}
		}
		return LitValue{Lit: ast.BoolLit(asBool(m.eval(n.Right)))}
	case ast.OpOr:
		if asBool(m.eval(n.Left)) {
			return LitValue{Lit: ast.BoolLit(true)}
		}
		return LitValue{Lit: ast.BoolLit(asBool(m.eval(n.Right)))}
	}

	left := m.eval(n.Left)
	right := m.eval(n.Right)

	switch n.Op {
	case ast.OpEq:
		return LitValue{Lit: ast.BoolLit(asLit(left).Equal(asLit(right)))}
	case ast.OpNeq:
		return LitValue{Lit: ast.BoolLit(!asLit(left).Equal(asLit(right)))}
	}

	a, b := asNum(left), asNum(right)
	switch n.Op {
	case ast.OpAdd:
		return numValue(new(big.Int).Add(a, b))
	case ast.OpSub:
		return numValue(new(big.Int).Sub(a, b))
	case ast.OpMul:
		return numValue(new(big.Int).Mul(a, b))
	case ast.OpDiv:
		if b.Sign() == 0 {
			fault("division by zero")
		}
		return numValue(new(big.Int).Quo(a, b))
	case ast.OpRem:
		if b.Sign() == 0 {
			fault("remainder by zero")
		}
		return numValue(new(big.Int).Rem(a, b))
	case ast.OpBitAnd:
		return numValue(new(big.Int).And(a, b))
	case ast.OpBitOr:
		return numValue(new(big.Int).Or(a, b))
	case ast.OpBitXor:
		return numValue(new(big.Int).Xor(a, b))
	case ast.OpShl:
		return numValue(new(big.Int).Lsh(a, shiftCount(b)))
	case ast.OpShr:
		return numValue(new(big.Int).Rsh(a, shiftCount(b)))
	case ast.OpLt:
		return LitValue{Lit: ast.BoolLit(a.Cmp(b) < 0)}
	case ast.OpLte:
		return LitValue{Lit: ast.BoolLit(a.Cmp(b) <= 0)}
	case ast.OpGt:
		return LitValue{Lit: ast.BoolLit(a.Cmp(b) > 0)}
	case ast.OpGte:
		return LitValue{Lit: ast.BoolLit(a.Cmp(b) >= 0)}
	default:
		panic("vm: unknown binary operator")
	}
}

func evalUnOp(op ast.UnOp, operand Value) Value {
	switch op {
	case ast.OpNeg:
		return numValue(new(big.Int).Neg(asNum(operand)))
	case ast.OpNot:
		return LitValue{Lit: ast.BoolLit(!asBool(operand))}
	default:
		panic("vm: unknown unary operator")
	}
}

// maxShift caps shift amounts so an absurd count faults instead of
// allocating an absurd number.
const maxShift = 1 << 16

// shiftCount bounds a shift amount. Negative and oversized counts are
// faults: the type system only guarantees an integer.
func shiftCount(n *big.Int) uint {
	if n.Sign() < 0 {
		fault("shift by negative count %s", n)
	}
	if !n.IsUint64() || n.Uint64() > maxShift {
		fault("shift count %s out of range", n)
	}
	c, err := safecast.Conv[uint](n.Uint64())
	if err != nil {
		fault("shift count %s out of range", n)
	}
	return c
}

func numValue(n *big.Int) Value {
	return LitValue{Lit: ast.NumberLit(n)}
}

func asLit(v Value) ast.Literal {
	lv, ok := v.(LitValue)
	if !ok {
		panic("vm: literal value expected")
	}
	return lv.Lit
}

func asNum(v Value) *big.Int {
	l := asLit(v)
	if l.Kind != ast.LitNumber {
		panic("vm: number expected")
	}
	return l.Num
}

func asBool(v Value) bool {
	l := asLit(v)
	if l.Kind != ast.LitBool {
		panic("vm: boolean expected")
	}
	return l.Bool
}
