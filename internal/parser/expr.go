package parser

import (
	"math/big"

	"loom/internal/ast"
	"loom/internal/token"
)

// Binding powers for the Pratt loop, weakest first. Every binary
// operator is left-associative.
const (
	bpNone = iota
	bpOr
	bpAnd
	bpCompare
	bpBitOr
	bpBitXor
	bpBitAnd
	bpShift
	bpAdd
	bpMul
)

type binOpInfo struct {
	op ast.BinOp
	bp int
}

var binOps = map[token.Kind]binOpInfo{
	token.OrOr:    {ast.OpOr, bpOr},
	token.AndAnd:  {ast.OpAnd, bpAnd},
	token.EqEq:    {ast.OpEq, bpCompare},
	token.NotEq:   {ast.OpNeq, bpCompare},
	token.Lt:      {ast.OpLt, bpCompare},
	token.Gt:      {ast.OpGt, bpCompare},
	token.LtEq:    {ast.OpLte, bpCompare},
	token.GtEq:    {ast.OpGte, bpCompare},
	token.Pipe:    {ast.OpBitOr, bpBitOr},
	token.Caret:   {ast.OpBitXor, bpBitXor},
	token.Amp:     {ast.OpBitAnd, bpBitAnd},
	token.Shl:     {ast.OpShl, bpShift},
	token.Shr:     {ast.OpShr, bpShift},
	token.Plus:    {ast.OpAdd, bpAdd},
	token.Minus:   {ast.OpSub, bpAdd},
	token.Star:    {ast.OpMul, bpMul},
	token.Slash:   {ast.OpDiv, bpMul},
	token.Percent: {ast.OpRem, bpMul},
}

// parseExpr is the Pratt loop: a prefix operand followed by operators
// of binding power above minBp.
func (p *Parser) parseExpr(minBp int) (ast.Node, *Error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		info, ok := binOps[p.cur().Kind]
		if !ok || info.bp <= minBp {
			return left, nil
		}
		p.advance()
		right, err := p.parseExpr(info.bp)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Op:    info.op,
			Left:  left,
			Right: right,
			Loc:   left.Span().Cover(right.Span()),
		}
	}
}

func (p *Parser) parseUnary() (ast.Node, *Error) {
	switch p.cur().Kind {
	case token.Minus:
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.OpNeg, Operand: operand, Loc: tok.Span.Cover(operand.Span())}, nil
	case token.Bang:
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.OpNot, Operand: operand, Loc: tok.Span.Cover(operand.Span())}, nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses a primary followed by any number of call
// argument lists. A paren starts a call only when nothing but spaces
// separate it from the callee; across a line break it is a new
// expression instead.
func (p *Parser) parsePostfix() (ast.Node, *Error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.at(token.LParen) && p.onlySpacesBetween(node.Span().End, p.cur().Span.Start) {
		p.advance()
		var args []ast.Node
		if !p.at(token.RParen) {
			for {
				arg, argErr := p.parseExpr(0)
				if argErr != nil {
					return nil, argErr
				}
				args = append(args, arg)
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}
		}
		closeTok, cErr := p.expect(token.RParen)
		if cErr != nil {
			return nil, cErr
		}
		node = &ast.CallExpr{
			Callee: node,
			Args:   args,
			Loc:    node.Span().Cover(closeTok.Span),
		}
	}
	return node, nil
}

func (p *Parser) parsePrimary() (ast.Node, *Error) {
	switch p.cur().Kind {
	case token.Number:
		tok := p.advance()
		num, ok := new(big.Int).SetString(tok.Text, 10)
		if !ok {
			return nil, p.errorf(tok.Span, "malformed number literal %q", tok.Text)
		}
		return &ast.LitExpr{Value: ast.NumberLit(num), Loc: tok.Span}, nil
	case token.KwTrue:
		tok := p.advance()
		return &ast.LitExpr{Value: ast.BoolLit(true), Loc: tok.Span}, nil
	case token.KwFalse:
		tok := p.advance()
		return &ast.LitExpr{Value: ast.BoolLit(false), Loc: tok.Span}, nil
	case token.KwUnit:
		tok := p.advance()
		return &ast.LitExpr{Value: ast.UnitLit(), Loc: tok.Span}, nil
	case token.Ident:
		tok := p.advance()
		return &ast.Ident{Name: tok.Text, Loc: tok.Span}, nil
	case token.KwFn:
		return p.parseFn()
	case token.KwIf:
		return p.parseCond()
	case token.LParen:
		p.advance()
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errorf(p.cur().Span, "expected expression, found %s", p.cur())
	}
}

// onlySpacesBetween reports whether the bytes in [from, to) are all
// spaces or tabs.
func (p *Parser) onlySpacesBetween(from, to uint32) bool {
	if from > to {
		return false
	}
	for _, b := range p.file.Content[from:to] {
		if b != ' ' && b != '\t' {
			return false
		}
	}
	return true
}
