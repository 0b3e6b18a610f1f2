package token

import (
	"fmt"

	"loom/internal/source"
)

// Token is one lexeme with its span and raw text.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, Number:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}

// keywords maps identifier spellings that are reserved words.
var keywords = map[string]Kind{
	"let":   KwLet,
	"fn":    KwFn,
	"rec":   KwRec,
	"if":    KwIf,
	"else":  KwElse,
	"do":    KwDo,
	"end":   KwEnd,
	"true":  KwTrue,
	"false": KwFalse,
	"unit":  KwUnit,
	"Bool":  KwBool,
	"Int":   KwInt,
	"Unit":  KwUnitTy,
}

// LookupIdent returns the keyword kind for s, or Ident.
func LookupIdent(s string) Kind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return Ident
}
