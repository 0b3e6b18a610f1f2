// Package parser builds the located AST from tokens.
package parser

import (
	"fmt"

	"loom/internal/ast"
	"loom/internal/lexer"
	"loom/internal/source"
	"loom/internal/token"
	"loom/internal/types"
)

// Error is a syntax error with the span of the offending input.
type Error struct {
	Msg  string
	Span source.Span
}

func (e *Error) Error() string { return e.Msg }

// Loc returns the primary span of the error.
func (e *Error) Loc() source.Span { return e.Span }

// Parser consumes the token stream of one file.
type Parser struct {
	file *source.File
	toks []token.Token
	pos  int
}

// Parse tokenizes and parses a whole file into its top-level block.
func Parse(file *source.File) (*ast.Block, *Error) {
	toks, lexErr := lexer.Scan(file)
	if lexErr != nil {
		return nil, &Error{Msg: lexErr.Msg, Span: lexErr.Span}
	}
	p := &Parser{file: file, toks: toks}
	blk, err := p.parseBlock(token.EOF)
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != token.EOF {
		return nil, p.errorf(p.cur().Span, "unexpected %s", p.cur())
	}
	return blk, nil
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) expect(kind token.Kind) (token.Token, *Error) {
	if !p.at(kind) {
		return token.Token{}, p.errorf(p.cur().Span, "expected %s, found %s", kind, p.cur())
	}
	return p.advance(), nil
}

func (p *Parser) errorf(span source.Span, format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...), Span: span}
}

// parseBlock parses nodes until one of the stop kinds. The stop token
// is not consumed. An empty block is allowed; its span is empty at the
// stop position.
func (p *Parser) parseBlock(stops ...token.Kind) (*ast.Block, *Error) {
	blk := &ast.Block{}
	for {
		k := p.cur().Kind
		for _, stop := range stops {
			if k == stop {
				if len(blk.Nodes) == 0 {
					at := p.cur().Span
					blk.Loc = source.Span{File: at.File, Start: at.Start, End: at.Start}
				}
				return blk, nil
			}
		}
		if k == token.EOF {
			return nil, p.errorf(p.cur().Span, "unexpected end of file")
		}
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		if len(blk.Nodes) == 0 {
			blk.Loc = n.Span()
		} else {
			blk.Loc = blk.Loc.Cover(n.Span())
		}
		blk.Nodes = append(blk.Nodes, n)
	}
}

// parseNode parses one block element: a let binding or an expression.
func (p *Parser) parseNode() (ast.Node, *Error) {
	if p.at(token.KwLet) {
		return p.parseLet()
	}
	return p.parseExpr(0)
}

func (p *Parser) parseLet() (ast.Node, *Error) {
	letTok := p.advance()
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	var ann *source.Located[types.Ty]
	if p.at(token.Colon) {
		p.advance()
		ty, tyErr := p.parseTy()
		if tyErr != nil {
			return nil, tyErr
		}
		ann = &ty
	}

	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}

	return &ast.LetBind{
		Name:  &ast.Ident{Name: nameTok.Text, Loc: nameTok.Span},
		Ann:   ann,
		Value: value,
		Loc:   letTok.Span.Cover(value.Span()),
	}, nil
}

func (p *Parser) parseCond() (ast.Node, *Error) {
	ifTok := p.advance()

	cond, err := p.parseBlock(token.KwDo)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwDo); err != nil {
		return nil, err
	}
	then, err := p.parseBlock(token.KwElse)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwElse); err != nil {
		return nil, err
	}
	els, err := p.parseBlock(token.KwEnd)
	if err != nil {
		return nil, err
	}
	endTok, err := p.expect(token.KwEnd)
	if err != nil {
		return nil, err
	}

	return &ast.Cond{
		Cond: cond,
		Then: then,
		Else: els,
		Loc:  ifTok.Span.Cover(endTok.Span),
	}, nil
}

// parseFn parses both plain and recursive function definitions. For
// recursive definitions the name and the return annotation are
// mandatory.
func (p *Parser) parseFn() (ast.Node, *Error) {
	fnTok := p.advance()

	rec := false
	if p.at(token.KwRec) {
		p.advance()
		rec = true
	}

	var name *ast.Ident
	if p.at(token.Ident) {
		nameTok := p.advance()
		name = &ast.Ident{Name: nameTok.Text, Loc: nameTok.Span}
	} else if rec {
		return nil, p.errorf(p.cur().Span, "recursive function definitions must be named")
	}

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	var ret *source.Located[types.Ty]
	if p.at(token.Colon) {
		p.advance()
		ty, tyErr := p.parseTy()
		if tyErr != nil {
			return nil, tyErr
		}
		ret = &ty
	} else if rec {
		return nil, p.errorf(p.cur().Span, "recursive function definitions must declare a return type")
	}

	if _, err := p.expect(token.KwDo); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(token.KwEnd)
	if err != nil {
		return nil, err
	}
	endTok, err := p.expect(token.KwEnd)
	if err != nil {
		return nil, err
	}

	span := fnTok.Span.Cover(endTok.Span)
	if rec {
		return &ast.FnRecDef{
			Name:   name,
			Params: params,
			Body:   body,
			Ret:    *ret,
			Loc:    span,
		}, nil
	}
	return &ast.FnDef{
		Name:   name,
		Params: params,
		Body:   body,
		Ret:    ret,
		Loc:    span,
	}, nil
}

// parseParams parses the comma-separated parameter bindings, consuming
// the closing paren. Every parameter carries a mandatory annotation.
func (p *Parser) parseParams() ([]*ast.Binding, *Error) {
	var params []*ast.Binding
	if p.at(token.RParen) {
		p.advance()
		return params, nil
	}
	for {
		nameTok, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		ty, tyErr := p.parseTy()
		if tyErr != nil {
			return nil, tyErr
		}
		params = append(params, &ast.Binding{
			Name: &ast.Ident{Name: nameTok.Text, Loc: nameTok.Span},
			Ty:   ty,
			Loc:  nameTok.Span.Cover(ty.Span),
		})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return params, nil
}

// parseTy parses a type: basic types, parenthesized types, and
// right-associative arrows.
func (p *Parser) parseTy() (source.Located[types.Ty], *Error) {
	var dom source.Located[types.Ty]
	switch p.cur().Kind {
	case token.KwBool:
		tok := p.advance()
		dom = source.At[types.Ty](types.Bool{}, tok.Span)
	case token.KwInt:
		tok := p.advance()
		dom = source.At[types.Ty](types.Int{}, tok.Span)
	case token.KwUnitTy:
		tok := p.advance()
		dom = source.At[types.Ty](types.Unit{}, tok.Span)
	case token.LParen:
		open := p.advance()
		inner, err := p.parseTy()
		if err != nil {
			return dom, err
		}
		closeTok, cErr := p.expect(token.RParen)
		if cErr != nil {
			return dom, cErr
		}
		dom = source.At(inner.Item, open.Span.Cover(closeTok.Span))
	default:
		return dom, p.errorf(p.cur().Span, "expected type, found %s", p.cur())
	}

	if p.at(token.Arrow) {
		p.advance()
		cod, err := p.parseTy()
		if err != nil {
			return dom, err
		}
		return source.At[types.Ty](&types.Arrow{Dom: dom.Item, Cod: cod.Item}, dom.Span.Cover(cod.Span)), nil
	}
	return dom, nil
}
