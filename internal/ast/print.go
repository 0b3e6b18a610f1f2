package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented tree rendering of the block, one node per
// line, for the parse command and debugging.
func Dump(w io.Writer, b *Block) {
	d := &dumper{w: w}
	d.block(b)
}

type dumper struct {
	w     io.Writer
	depth int
}

func (d *dumper) printf(format string, args ...any) {
	fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", d.depth), fmt.Sprintf(format, args...))
}

func (d *dumper) nested(fn func()) {
	d.depth++
	fn()
	d.depth--
}

func (d *dumper) block(b *Block) {
	d.printf("block @ %s", b.Loc)
	d.nested(func() {
		for _, n := range b.Nodes {
			d.node(n)
		}
	})
}

func (d *dumper) node(n Node) {
	switch n := n.(type) {
	case *BinaryExpr:
		d.printf("binary %s @ %s", n.Op, n.Loc)
		d.nested(func() {
			d.node(n.Left)
			d.node(n.Right)
		})
	case *UnaryExpr:
		d.printf("unary %s @ %s", n.Op, n.Loc)
		d.nested(func() { d.node(n.Operand) })
	case *LetBind:
		if n.Ann != nil {
			d.printf("let %s: %s @ %s", n.Name.Name, n.Ann.Item, n.Loc)
		} else {
			d.printf("let %s @ %s", n.Name.Name, n.Loc)
		}
		d.nested(func() { d.node(n.Value) })
	case *Cond:
		d.printf("cond @ %s", n.Loc)
		d.nested(func() {
			d.block(n.Cond)
			d.block(n.Then)
			d.block(n.Else)
		})
	case *FnDef:
		name := "<anonymous>"
		if n.Name != nil {
			name = n.Name.Name
		}
		d.printf("fn %s%s @ %s", name, paramList(n.Params), n.Loc)
		d.nested(func() { d.block(n.Body) })
	case *FnRecDef:
		d.printf("fn rec %s%s: %s @ %s", n.Name.Name, paramList(n.Params), n.Ret.Item, n.Loc)
		d.nested(func() { d.block(n.Body) })
	case *CallExpr:
		d.printf("call @ %s", n.Loc)
		d.nested(func() {
			d.node(n.Callee)
			for _, arg := range n.Args {
				d.node(arg)
			}
		})
	case *LitExpr:
		d.printf("literal %s @ %s", n.Value, n.Loc)
	case *Ident:
		d.printf("name %s @ %s", n.Name, n.Loc)
	default:
		d.printf("<unknown node>")
	}
}

func paramList(params []*Binding) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name.Name, p.Ty.Item)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
