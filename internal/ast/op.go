package ast

// BinOp is a binary operator. The set is closed; there is no operator
// overloading.
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShr
	OpShl
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLte
	OpGte
)

// String returns the canonical display symbol of the operator.
func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpRem:
		return "%"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	case OpShr:
		return ">>"
	case OpShl:
		return "<<"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLte:
		return "<="
	case OpGte:
		return ">="
	default:
		return "?"
	}
}

// UnOp is a unary operator.
type UnOp uint8

const (
	OpNeg UnOp = iota
	OpNot
)

// String returns the canonical display symbol of the operator.
func (op UnOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpNot:
		return "!"
	default:
		return "?"
	}
}
