// Package types defines the loom type language and typing errors.
//
// Types are structural and compared by deep equality. There is no
// subtyping and no coercion between the basic types.
package types

import "fmt"

// Ty is the type of a term. The variant set is closed: Bool, Int, Unit
// and Arrow.
type Ty interface {
	fmt.Stringer
	tyNode()
}

// Bool is the type of booleans.
type Bool struct{}

// Int is the type of signed integers.
type Int struct{}

// Unit is the unit type.
type Unit struct{}

// Arrow is the type of functions from Dom to Cod. Multi-parameter
// functions are right-nested arrow chains.
type Arrow struct {
	Dom Ty
	Cod Ty
}

func (Bool) tyNode()   {}
func (Int) tyNode()    {}
func (Unit) tyNode()   {}
func (*Arrow) tyNode() {}

func (Bool) String() string { return "Bool" }
func (Int) String() string  { return "Int" }
func (Unit) String() string { return "Unit" }

// String renders the arrow right-associatively; an arrow in parameter
// position is parenthesized.
func (a *Arrow) String() string {
	if _, ok := a.Dom.(*Arrow); ok {
		return fmt.Sprintf("(%s) -> %s", a.Dom, a.Cod)
	}
	return fmt.Sprintf("%s -> %s", a.Dom, a.Cod)
}

// Equal reports whether two types are structurally equal.
func Equal(a, b Ty) bool {
	switch a := a.(type) {
	case Bool:
		_, ok := b.(Bool)
		return ok
	case Int:
		_, ok := b.(Int)
		return ok
	case Unit:
		_, ok := b.(Unit)
		return ok
	case *Arrow:
		bArrow, ok := b.(*Arrow)
		return ok && Equal(a.Dom, bArrow.Dom) && Equal(a.Cod, bArrow.Cod)
	default:
		return false
	}
}

// IsArrow reports whether t is a function type.
func IsArrow(t Ty) bool {
	_, ok := t.(*Arrow)
	return ok
}

// Binding associates a name with a type. It is the unit of scope
// extension inside the checker: parameters and checked let-bindings
// enter scope as bindings.
type Binding struct {
	Name string
	Ty   Ty
}
