package ast

import "math/big"

// LitKind discriminates literal values.
type LitKind uint8

const (
	LitBool LitKind = iota
	LitUnit
	LitNumber
)

// Literal is a literal value: a boolean, the unit value, or a signed
// integer. Numbers are arbitrary precision, covering the full signed
// 128-bit range of the surface language.
type Literal struct {
	Kind LitKind
	Bool bool
	Num  *big.Int
}

// BoolLit builds a boolean literal.
func BoolLit(b bool) Literal {
	return Literal{Kind: LitBool, Bool: b}
}

// UnitLit builds the unit literal.
func UnitLit() Literal {
	return Literal{Kind: LitUnit}
}

// NumberLit builds an integer literal.
func NumberLit(num *big.Int) Literal {
	return Literal{Kind: LitNumber, Num: num}
}

// Int64Lit builds an integer literal from an int64, for convenience.
func Int64Lit(v int64) Literal {
	return Literal{Kind: LitNumber, Num: big.NewInt(v)}
}

// Equal reports whether two literals are the same value.
func (l Literal) Equal(other Literal) bool {
	if l.Kind != other.Kind {
		return false
	}
	switch l.Kind {
	case LitBool:
		return l.Bool == other.Bool
	case LitUnit:
		return true
	case LitNumber:
		return l.Num.Cmp(other.Num) == 0
	default:
		return false
	}
}

func (l Literal) String() string {
	switch l.Kind {
	case LitBool:
		if l.Bool {
			return "true"
		}
		return "false"
	case LitUnit:
		return "unit"
	case LitNumber:
		return l.Num.String()
	default:
		return "<invalid literal>"
	}
}
