package mir

import (
	"loom/internal/ast"
	"loom/internal/source"
	"loom/internal/types"
)

// FromAST lowers a top-level block into a MIR term. The only failure
// mode is an unresolvable name, reported through the typing error
// channel.
func FromAST(b *ast.Block) (Term, *types.Error) {
	lo := &lowerer{}
	t, err := lo.block(b)
	if err != nil {
		return nil, err
	}
	if len(lo.scope) != 0 {
		// A pass bug, never a user error.
		panic("mir: scope stack not empty after lowering")
	}
	return t, nil
}

type lowerer struct {
	// scope holds the names in scope, innermost last. Wildcard slots
	// use the empty string, which no identifier can spell.
	scope []string
}

func (lo *lowerer) push(name string) {
	lo.scope = append(lo.scope, name)
}

func (lo *lowerer) pop() {
	lo.scope = lo.scope[:len(lo.scope)-1]
}

// resolve returns the de Bruijn index of name, or -1.
func (lo *lowerer) resolve(name string) int {
	for i := len(lo.scope) - 1; i >= 0; i-- {
		if lo.scope[i] == name {
			return len(lo.scope) - 1 - i
		}
	}
	return -1
}

func (lo *lowerer) block(b *ast.Block) (Term, *types.Error) {
	return lo.nodes(b.Nodes, b.Loc)
}

// nodes lowers a block's node sequence into a let-chain. The last
// node's value is the block's value; a trailing binding's value is the
// bound value itself.
func (lo *lowerer) nodes(nodes []ast.Node, blockLoc source.Span) (Term, *types.Error) {
	if len(nodes) == 0 {
		return &Empty{Loc: blockLoc}, nil
	}

	head, rest := nodes[0], nodes[1:]
	switch n := head.(type) {
	case *ast.LetBind:
		value, err := lo.node(n.Value)
		if err != nil {
			return nil, err
		}
		return lo.chain(n.Name.Name, n.Ann, value, n.Loc, rest, blockLoc)

	case *ast.FnDef:
		if n.Name != nil {
			fn, err := lo.fn(n.Name.Name, false, n.Params, n.Body, n.Ret, n.Loc)
			if err != nil {
				return nil, err
			}
			return lo.chain(n.Name.Name, nil, fn, n.Loc, rest, blockLoc)
		}
		return lo.expr(head, rest, blockLoc)

	case *ast.FnRecDef:
		rec := ast.IsRecursive(n.Name.Name, n.Body)
		ret := n.Ret
		fn, err := lo.fn(n.Name.Name, rec, n.Params, n.Body, &ret, n.Loc)
		if err != nil {
			return nil, err
		}
		return lo.chain(n.Name.Name, nil, fn, n.Loc, rest, blockLoc)

	default:
		return lo.expr(head, rest, blockLoc)
	}
}

// chain binds value as name and lowers the rest of the block as the
// body. A trailing binding's body is a variable referencing it.
func (lo *lowerer) chain(name string, ann *source.Located[types.Ty], value Term, loc source.Span, rest []ast.Node, blockLoc source.Span) (Term, *types.Error) {
	lo.push(name)
	var body Term
	var err *types.Error
	if len(rest) == 0 {
		body = &Var{Name: name, Index: 0, Loc: loc}
	} else {
		body, err = lo.nodes(rest, blockLoc)
	}
	lo.pop()
	if err != nil {
		return nil, err
	}
	return &Let{Name: name, Ann: ann, Value: value, Body: body, Loc: loc}, nil
}

// expr lowers a non-binding node; mid-block it becomes a wildcard let.
func (lo *lowerer) expr(head ast.Node, rest []ast.Node, blockLoc source.Span) (Term, *types.Error) {
	value, err := lo.node(head)
	if err != nil {
		return nil, err
	}
	if len(rest) == 0 {
		return value, nil
	}
	lo.push("")
	body, err := lo.nodes(rest, blockLoc)
	lo.pop()
	if err != nil {
		return nil, err
	}
	return &Let{Name: "", Value: value, Body: body, Loc: head.Span()}, nil
}

func (lo *lowerer) node(n ast.Node) (Term, *types.Error) {
	switch n := n.(type) {
	case *ast.LitExpr:
		return &Lit{Value: n.Value, Loc: n.Loc}, nil

	case *ast.Ident:
		idx := lo.resolve(n.Name)
		if idx < 0 {
			return nil, types.NewUnbound(n.Name, n.Loc)
		}
		return &Var{Name: n.Name, Index: idx, Loc: n.Loc}, nil

	case *ast.UnaryExpr:
		operand, err := lo.node(n.Operand)
		if err != nil {
			return nil, err
		}
		return &UnOp{Op: n.Op, Operand: operand, Loc: n.Loc}, nil

	case *ast.BinaryExpr:
		left, err := lo.node(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := lo.node(n.Right)
		if err != nil {
			return nil, err
		}
		return &BinOp{Op: n.Op, Left: left, Right: right, Loc: n.Loc}, nil

	case *ast.Cond:
		ifTerm, err := lo.block(n.Cond)
		if err != nil {
			return nil, err
		}
		thenTerm, err := lo.block(n.Then)
		if err != nil {
			return nil, err
		}
		elseTerm, err := lo.block(n.Else)
		if err != nil {
			return nil, err
		}
		return &Cond{If: ifTerm, Then: thenTerm, Else: elseTerm, Loc: n.Loc}, nil

	case *ast.FnDef:
		name := ""
		if n.Name != nil {
			name = n.Name.Name
		}
		return lo.fn(name, false, n.Params, n.Body, n.Ret, n.Loc)

	case *ast.FnRecDef:
		rec := ast.IsRecursive(n.Name.Name, n.Body)
		ret := n.Ret
		return lo.fn(n.Name.Name, rec, n.Params, n.Body, &ret, n.Loc)

	case *ast.CallExpr:
		callee, err := lo.node(n.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]Term, 0, len(n.Args))
		for _, a := range n.Args {
			arg, err := lo.node(a)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		if len(args) == 0 {
			// Zero-argument calls pass unit.
			args = append(args, &Lit{Value: ast.UnitLit(), Loc: n.Loc})
		}
		return &Call{Callee: callee, Args: args, Loc: n.Loc}, nil

	case *ast.LetBind:
		// The grammar confines bindings to block positions.
		panic("mir: let binding outside a block")

	default:
		panic("mir: unknown AST node variant")
	}
}

// fn lowers a function definition. The body scope gains the function's
// own name first (recursive definitions only), then the parameters in
// order. Zero-parameter functions take one synthetic unit parameter so
// every function type is an arrow.
func (lo *lowerer) fn(name string, rec bool, params []*ast.Binding, body *ast.Block, ret *source.Located[types.Ty], loc source.Span) (Term, *types.Error) {
	mirParams := make([]Param, 0, len(params))
	for _, p := range params {
		mirParams = append(mirParams, Param{Name: p.Name.Name, Ty: p.Ty})
	}
	if len(mirParams) == 0 {
		mirParams = append(mirParams, Param{Name: "", Ty: source.At[types.Ty](types.Unit{}, loc)})
	}

	depth := 0
	if rec {
		lo.push(name)
		depth++
	}
	for _, p := range mirParams {
		lo.push(p.Name)
		depth++
	}
	bodyTerm, err := lo.block(body)
	for range depth {
		lo.pop()
	}
	if err != nil {
		return nil, err
	}

	var retCopy *source.Located[types.Ty]
	if ret != nil {
		r := *ret
		retCopy = &r
	}
	return &Fn{
		Name:   name,
		Rec:    rec,
		Params: mirParams,
		Ret:    retCopy,
		Body:   bodyTerm,
		Loc:    loc,
	}, nil
}
