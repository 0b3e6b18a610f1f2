package ast

import (
	"testing"

	"loom/internal/source"
	"loom/internal/types"
)

func name(s string) *Ident { return &Ident{Name: s} }

func block(nodes ...Node) *Block { return &Block{Nodes: nodes} }

func letBind(n string, value Node) *LetBind {
	return &LetBind{Name: name(n), Value: value}
}

func TestIsRecursive(t *testing.T) {
	intTy := source.At[types.Ty](types.Int{}, source.Span{})

	tests := []struct {
		name   string
		target string
		body   *Block
		want   bool
	}{
		{
			name:   "plain use is recursive",
			target: "f",
			body:   block(&CallExpr{Callee: name("f"), Args: []Node{&LitExpr{Value: Int64Lit(1)}}}),
			want:   true,
		},
		{
			name:   "rebinding before use shadows",
			target: "f",
			body:   block(letBind("f", &LitExpr{Value: Int64Lit(1)}), name("f")),
			want:   false,
		},
		{
			name:   "use before rebinding is recursive",
			target: "f",
			body:   block(name("f"), letBind("f", &LitExpr{Value: Int64Lit(1)})),
			want:   true,
		},
		{
			name:   "inner definition of the same name shadows its own body",
			target: "f",
			body: block(&FnDef{
				Name: name("f"),
				Body: block(&CallExpr{Callee: name("f")}),
			}),
			want: false,
		},
		{
			name:   "inner rec definition of the same name shadows too",
			target: "f",
			body: block(&FnRecDef{
				Name: name("f"),
				Ret:  intTy,
				Body: block(&CallExpr{Callee: name("f")}),
			}),
			want: false,
		},
		{
			name:   "shadowing inside a cond branch does not leak",
			target: "f",
			body: block(
				&Cond{
					Cond: block(&LitExpr{Value: BoolLit(true)}),
					Then: block(letBind("f", &LitExpr{Value: Int64Lit(1)}), name("f")),
					Else: block(&LitExpr{Value: Int64Lit(0)}),
				},
				name("f"),
			),
			want: true,
		},
		{
			name:   "shadowing is inherited by nested scopes",
			target: "f",
			body: block(
				letBind("f", &LitExpr{Value: Int64Lit(1)}),
				&Cond{
					Cond: block(&LitExpr{Value: BoolLit(true)}),
					Then: block(name("f")),
					Else: block(name("f")),
				},
			),
			want: false,
		},
		{
			name:   "unrelated names do not trigger",
			target: "f",
			body:   block(name("g"), &CallExpr{Callee: name("h"), Args: []Node{name("x")}}),
			want:   false,
		},
		{
			name:   "occurrence inside an inner unrelated function counts",
			target: "f",
			body: block(&FnDef{
				Name: name("g"),
				Body: block(&CallExpr{Callee: name("f")}),
			}),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecursive(tt.target, tt.body); got != tt.want {
				t.Errorf("IsRecursive(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}
