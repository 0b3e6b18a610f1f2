// Package token defines the lexical vocabulary of loom source files.
package token

// Kind identifies a token class.
type Kind uint8

const (
	EOF Kind = iota
	Ident
	Number

	// Keywords
	KwLet
	KwFn
	KwRec
	KwIf
	KwElse
	KwDo
	KwEnd
	KwTrue
	KwFalse
	KwUnit
	KwBool
	KwInt
	KwUnitTy

	// Punctuation
	LParen
	RParen
	Colon
	Comma
	Assign // =

	// Operators
	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	AndAnd  // &&
	OrOr    // ||
	Amp     // &
	Pipe    // |
	Caret   // ^
	Shr     // >>
	Shl     // <<
	EqEq    // ==
	NotEq   // !=
	Lt      // <
	Gt      // >
	LtEq    // <=
	GtEq    // >=
	Bang    // !
	Arrow   // ->
)

var kindNames = map[Kind]string{
	EOF:      "end of file",
	Ident:    "identifier",
	Number:   "number",
	KwLet:    "let",
	KwFn:     "fn",
	KwRec:    "rec",
	KwIf:     "if",
	KwElse:   "else",
	KwDo:     "do",
	KwEnd:    "end",
	KwTrue:   "true",
	KwFalse:  "false",
	KwUnit:   "unit",
	KwBool:   "Bool",
	KwInt:    "Int",
	KwUnitTy: "Unit",
	LParen:   "(",
	RParen:   ")",
	Colon:    ":",
	Comma:    ",",
	Assign:   "=",
	Plus:     "+",
	Minus:    "-",
	Star:     "*",
	Slash:    "/",
	Percent:  "%",
	AndAnd:   "&&",
	OrOr:     "||",
	Amp:      "&",
	Pipe:     "|",
	Caret:    "^",
	Shr:      ">>",
	Shl:      "<<",
	EqEq:     "==",
	NotEq:    "!=",
	Lt:       "<",
	Gt:       ">",
	LtEq:     "<=",
	GtEq:     ">=",
	Bang:     "!",
	Arrow:    "->",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
