// Package vm runs evaluation terms to values. Evaluation is
// call-by-value and deterministic; a type-checked program cannot go
// wrong here except for the arithmetic faults listed on Fault.
package vm

import (
	"fmt"

	"loom/internal/ast"
	"loom/internal/lir"
)

// Value is a runtime value.
type Value interface {
	fmt.Stringer
	value()
}

// LitValue wraps a literal.
type LitValue struct {
	Lit ast.Literal
}

func (v LitValue) value() {}

func (v LitValue) String() string {
	return v.Lit.String()
}

// Closure pairs an abstraction with its captured environment and any
// arguments applied so far. Closures are immutable after construction:
// partial application copies, so one closure can be applied from
// several call sites.
type Closure struct {
	fn      *lir.Fn
	env     []Value
	applied []Value
}

func (v *Closure) value() {}

func (v *Closure) String() string {
	if v.fn.Name != "" {
		return "<function " + v.fn.Name + ">"
	}
	return "<function>"
}

// Fault is a runtime fault outside the type system's guarantees, such
// as division by zero. The machine raises it through panic; Evaluate
// recovers it.
type Fault struct {
	Msg string
}

func (f *Fault) Error() string {
	return f.Msg
}

func fault(format string, args ...any) {
	panic(&Fault{Msg: fmt.Sprintf(format, args...)})
}
