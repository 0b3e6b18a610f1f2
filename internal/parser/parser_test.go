package parser

import (
	"testing"

	"loom/internal/ast"
	"loom/internal/source"
	"loom/internal/types"
)

func parse(t *testing.T, src string) *ast.Block {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lm", []byte(src))
	blk, err := Parse(fs.Get(id))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return blk
}

func parseErr(t *testing.T, src string) *Error {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lm", []byte(src))
	_, err := Parse(fs.Get(id))
	if err == nil {
		t.Fatalf("Parse(%q) unexpectedly succeeded", src)
	}
	return err
}

func TestParseLet(t *testing.T) {
	blk := parse(t, "let x: Int = 1 + 2")
	if len(blk.Nodes) != 1 {
		t.Fatalf("nodes = %d, want 1", len(blk.Nodes))
	}
	let, ok := blk.Nodes[0].(*ast.LetBind)
	if !ok {
		t.Fatalf("node is %T, want *ast.LetBind", blk.Nodes[0])
	}
	if let.Name.Name != "x" {
		t.Errorf("name = %q, want x", let.Name.Name)
	}
	if let.Ann == nil || !types.Equal(let.Ann.Item, types.Int{}) {
		t.Errorf("annotation = %v, want Int", let.Ann)
	}
	bin, ok := let.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("value = %#v, want addition", let.Value)
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3)
	blk := parse(t, "1 + 2 * 3")
	bin := blk.Nodes[0].(*ast.BinaryExpr)
	if bin.Op != ast.OpAdd {
		t.Fatalf("root op = %s, want +", bin.Op)
	}
	right := bin.Right.(*ast.BinaryExpr)
	if right.Op != ast.OpMul {
		t.Errorf("right op = %s, want *", right.Op)
	}

	// 1 - 2 - 3 parses as (1 - 2) - 3
	blk = parse(t, "1 - 2 - 3")
	bin = blk.Nodes[0].(*ast.BinaryExpr)
	if bin.Op != ast.OpSub {
		t.Fatalf("root op = %s, want -", bin.Op)
	}
	if _, ok := bin.Left.(*ast.BinaryExpr); !ok {
		t.Error("subtraction is not left-associative")
	}

	// comparison binds weaker than arithmetic
	blk = parse(t, "n <= 1 + 2")
	bin = blk.Nodes[0].(*ast.BinaryExpr)
	if bin.Op != ast.OpLte {
		t.Errorf("root op = %s, want <=", bin.Op)
	}

	// parens override
	blk = parse(t, "(1 + 2) * 3")
	bin = blk.Nodes[0].(*ast.BinaryExpr)
	if bin.Op != ast.OpMul {
		t.Errorf("root op = %s, want *", bin.Op)
	}
}

func TestParseUnary(t *testing.T) {
	blk := parse(t, "-x + !b")
	bin := blk.Nodes[0].(*ast.BinaryExpr)
	left := bin.Left.(*ast.UnaryExpr)
	if left.Op != ast.OpNeg {
		t.Errorf("left op = %s, want -", left.Op)
	}
	right := bin.Right.(*ast.UnaryExpr)
	if right.Op != ast.OpNot {
		t.Errorf("right op = %s, want !", right.Op)
	}
}

func TestParseCond(t *testing.T) {
	blk := parse(t, "if n <= 1 do 1 else n end")
	cond := blk.Nodes[0].(*ast.Cond)
	if len(cond.Cond.Nodes) != 1 || len(cond.Then.Nodes) != 1 || len(cond.Else.Nodes) != 1 {
		t.Fatalf("cond blocks = %d/%d/%d nodes, want 1/1/1",
			len(cond.Cond.Nodes), len(cond.Then.Nodes), len(cond.Else.Nodes))
	}
	if _, ok := cond.Cond.Nodes[0].(*ast.BinaryExpr); !ok {
		t.Errorf("condition is %T, want comparison", cond.Cond.Nodes[0])
	}
}

func TestParseFnDef(t *testing.T) {
	blk := parse(t, "fn add(a: Int, b: Int): Int do a + b end")
	fn := blk.Nodes[0].(*ast.FnDef)
	if fn.Name == nil || fn.Name.Name != "add" {
		t.Fatalf("name = %v, want add", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(fn.Params))
	}
	if fn.Params[1].Name.Name != "b" || !types.Equal(fn.Params[1].Ty.Item, types.Int{}) {
		t.Errorf("param b = %+v", fn.Params[1])
	}
	if fn.Ret == nil || !types.Equal(fn.Ret.Item, types.Int{}) {
		t.Errorf("ret = %v, want Int", fn.Ret)
	}
}

func TestParseAnonymousFn(t *testing.T) {
	blk := parse(t, "let id = fn(x: Int) do x end")
	let := blk.Nodes[0].(*ast.LetBind)
	fn, ok := let.Value.(*ast.FnDef)
	if !ok {
		t.Fatalf("value is %T, want *ast.FnDef", let.Value)
	}
	if fn.Name != nil {
		t.Errorf("name = %v, want anonymous", fn.Name)
	}
	if fn.Ret != nil {
		t.Errorf("ret = %v, want none", fn.Ret)
	}
}

func TestParseFnRec(t *testing.T) {
	blk := parse(t, "fn rec fact(n: Int): Int do if n <= 1 do 1 else n * fact(n - 1) end end")
	fn := blk.Nodes[0].(*ast.FnRecDef)
	if fn.Name.Name != "fact" {
		t.Errorf("name = %q, want fact", fn.Name.Name)
	}
	if !types.Equal(fn.Ret.Item, types.Int{}) {
		t.Errorf("ret = %s, want Int", fn.Ret.Item)
	}
}

func TestParseCall(t *testing.T) {
	blk := parse(t, "f(1, 2)(3)")
	outer := blk.Nodes[0].(*ast.CallExpr)
	if len(outer.Args) != 1 {
		t.Fatalf("outer args = %d, want 1", len(outer.Args))
	}
	inner := outer.Callee.(*ast.CallExpr)
	if len(inner.Args) != 2 {
		t.Fatalf("inner args = %d, want 2", len(inner.Args))
	}
	if id, ok := inner.Callee.(*ast.Ident); !ok || id.Name != "f" {
		t.Errorf("callee = %#v, want f", inner.Callee)
	}
}

func TestCallRequiresSameLine(t *testing.T) {
	// A paren on the next line starts a new expression, not a call.
	blk := parse(t, "f\n(1)")
	if len(blk.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(blk.Nodes))
	}
	if _, ok := blk.Nodes[0].(*ast.Ident); !ok {
		t.Errorf("first node is %T, want name", blk.Nodes[0])
	}
	if _, ok := blk.Nodes[1].(*ast.LitExpr); !ok {
		t.Errorf("second node is %T, want literal", blk.Nodes[1])
	}
}

func TestParseArrowTy(t *testing.T) {
	blk := parse(t, "let f: Int -> Int -> Bool = g")
	let := blk.Nodes[0].(*ast.LetBind)
	arrow, ok := let.Ann.Item.(*types.Arrow)
	if !ok {
		t.Fatalf("annotation = %v, want arrow", let.Ann.Item)
	}
	// Right-associative: Int -> (Int -> Bool)
	if !types.Equal(arrow.Dom, types.Int{}) {
		t.Errorf("dom = %s, want Int", arrow.Dom)
	}
	if _, ok := arrow.Cod.(*types.Arrow); !ok {
		t.Errorf("cod = %s, want arrow", arrow.Cod)
	}

	blk = parse(t, "let f: (Int -> Int) -> Bool = g")
	let = blk.Nodes[0].(*ast.LetBind)
	arrow = let.Ann.Item.(*types.Arrow)
	if _, ok := arrow.Dom.(*types.Arrow); !ok {
		t.Errorf("dom = %s, want arrow", arrow.Dom)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing end", "if true do 1 else 2"},
		{"missing else", "if true do 1 end"},
		{"rec without name", "fn rec (n: Int): Int do 1 end"},
		{"rec without return type", "fn rec f(n: Int) do 1 end"},
		{"param without annotation", "fn f(x) do x end"},
		{"let without value", "let x ="},
		{"unknown char", "1 @ 2"},
		{"dangling operator", "1 +"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErr(t, tt.src)
			if err.Span.File != 0 {
				t.Errorf("error file = %d, want 0", err.Span.File)
			}
		})
	}
}

func TestParseSpans(t *testing.T) {
	src := "let x = 1 + 2"
	blk := parse(t, src)
	let := blk.Nodes[0].(*ast.LetBind)
	if let.Loc.Start != 0 || let.Loc.End != uint32(len(src)) {
		t.Errorf("let span = %v, want 0-%d", let.Loc, len(src))
	}
	bin := let.Value.(*ast.BinaryExpr)
	if bin.Loc.Start != 8 || bin.Loc.End != 13 {
		t.Errorf("value span = %v, want 8-13", bin.Loc)
	}
}
