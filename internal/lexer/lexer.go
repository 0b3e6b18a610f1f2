// Package lexer turns loom source bytes into tokens.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"loom/internal/source"
	"loom/internal/token"
)

// Error is a lexical error with the span of the offending input.
type Error struct {
	Msg  string
	Span source.Span
}

func (e *Error) Error() string { return e.Msg }

// Loc returns the primary span of the error.
func (e *Error) Loc() source.Span { return e.Span }

// Lexer scans one source file. It keeps no lookahead; callers buffer
// tokens as needed.
type Lexer struct {
	file *source.File
	pos  int
}

// New creates a lexer over file.
func New(file *source.File) *Lexer {
	return &Lexer{file: file}
}

// Scan tokenizes the whole file. The returned slice always ends with
// an EOF token when err is nil.
func Scan(file *source.File) ([]token.Token, *Error) {
	lx := New(file)
	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Next returns the next significant token. After EOF it keeps
// returning EOF.
func (lx *Lexer) Next() (token.Token, *Error) {
	lx.skipTrivia()

	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: lx.spanFrom(lx.pos)}, nil
	}

	ch := lx.file.Content[lx.pos]
	switch {
	case isIdentStart(ch) || ch >= utf8.RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDigit(ch):
		return lx.scanNumber(), nil
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) eof() bool {
	return lx.pos >= len(lx.file.Content)
}

func (lx *Lexer) peekAt(off int) byte {
	if lx.pos+off >= len(lx.file.Content) {
		return 0
	}
	return lx.file.Content[lx.pos+off]
}

// skipTrivia consumes whitespace, statement separators and # line
// comments.
func (lx *Lexer) skipTrivia() {
	for !lx.eof() {
		switch lx.file.Content[lx.pos] {
		case ' ', '\t', '\n', '\r', ';':
			lx.pos++
		case '#':
			for !lx.eof() && lx.file.Content[lx.pos] != '\n' {
				lx.pos++
			}
		default:
			return
		}
	}
}

func (lx *Lexer) spanFrom(start int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](lx.pos)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return source.Span{File: lx.file.ID, Start: s, End: e}
}

func (lx *Lexer) scanIdentOrKeyword() (token.Token, *Error) {
	start := lx.pos
	hasUnicode := false
	for !lx.eof() {
		ch := lx.file.Content[lx.pos]
		if isIdentContinue(ch) {
			lx.pos++
			continue
		}
		if ch >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(lx.file.Content[lx.pos:])
			if r == utf8.RuneError && size == 1 {
				return token.Token{}, &Error{Msg: "invalid UTF-8 sequence", Span: lx.errSpanAt(lx.pos, 1)}
			}
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			hasUnicode = true
			lx.pos += size
			continue
		}
		break
	}

	if lx.pos == start {
		// A multi-byte rune that is neither a letter nor a digit. Without
		// this we would loop forever emitting empty idents.
		r, size := utf8.DecodeRune(lx.file.Content[start:])
		return token.Token{}, &Error{
			Msg:  fmt.Sprintf("unknown character %q", r),
			Span: lx.errSpanAt(start, size),
		}
	}

	text := string(lx.file.Content[start:lx.pos])
	if hasUnicode {
		// Identifiers compare by string equality, so normalize once here.
		text = norm.NFC.String(text)
	}
	return token.Token{
		Kind: token.LookupIdent(text),
		Span: lx.spanFrom(start),
		Text: text,
	}, nil
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.pos
	for !lx.eof() && isDigit(lx.file.Content[lx.pos]) {
		lx.pos++
	}
	return token.Token{
		Kind: token.Number,
		Span: lx.spanFrom(start),
		Text: string(lx.file.Content[start:lx.pos]),
	}
}

func (lx *Lexer) scanOperatorOrPunct() (token.Token, *Error) {
	start := lx.pos
	ch := lx.file.Content[lx.pos]
	next := lx.peekAt(1)

	kind := token.EOF
	size := 1
	switch ch {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case ':':
		kind = token.Colon
	case ',':
		kind = token.Comma
	case '+':
		kind = token.Plus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '^':
		kind = token.Caret
	case '-':
		kind = token.Minus
		if next == '>' {
			kind, size = token.Arrow, 2
		}
	case '=':
		kind = token.Assign
		if next == '=' {
			kind, size = token.EqEq, 2
		}
	case '!':
		kind = token.Bang
		if next == '=' {
			kind, size = token.NotEq, 2
		}
	case '&':
		kind = token.Amp
		if next == '&' {
			kind, size = token.AndAnd, 2
		}
	case '|':
		kind = token.Pipe
		if next == '|' {
			kind, size = token.OrOr, 2
		}
	case '<':
		kind = token.Lt
		if next == '=' {
			kind, size = token.LtEq, 2
		} else if next == '<' {
			kind, size = token.Shl, 2
		}
	case '>':
		kind = token.Gt
		if next == '=' {
			kind, size = token.GtEq, 2
		} else if next == '>' {
			kind, size = token.Shr, 2
		}
	default:
		return token.Token{}, &Error{
			Msg:  fmt.Sprintf("unknown character %q", ch),
			Span: lx.errSpanAt(start, 1),
		}
	}

	lx.pos += size
	return token.Token{
		Kind: kind,
		Span: lx.spanFrom(start),
		Text: string(lx.file.Content[start:lx.pos]),
	}, nil
}

func (lx *Lexer) errSpanAt(start, length int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	l, err := safecast.Conv[uint32](length)
	if err != nil {
		panic(fmt.Errorf("span length overflow: %w", err))
	}
	return source.Span{File: lx.file.ID, Start: s, End: s + l}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
