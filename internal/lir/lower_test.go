package lir

import (
	"testing"

	"loom/internal/ast"
	"loom/internal/mir"
	"loom/internal/parser"
	"loom/internal/source"
)

func lowerSrc(t *testing.T, src string) Term {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lm", []byte(src))
	blk, parseErr := parser.Parse(fs.Get(id))
	if parseErr != nil {
		t.Fatalf("Parse(%q) failed: %v", src, parseErr)
	}
	term, err := mir.FromAST(blk)
	if err != nil {
		t.Fatalf("FromAST(%q) failed: %v", src, err)
	}
	return FromMIR(term)
}

func TestFromMIRShapes(t *testing.T) {
	term := lowerSrc(t, "let x = 1\nif x < 2 do -x else x + 1 end")
	let, ok := term.(*Let)
	if !ok {
		t.Fatalf("term = %T, want *Let", term)
	}
	if let.Name != "x" {
		t.Errorf("name = %q, want x", let.Name)
	}
	cond, ok := let.Body.(*Cond)
	if !ok {
		t.Fatalf("body = %T, want *Cond", let.Body)
	}
	if _, ok := cond.If.(*BinOp); !ok {
		t.Errorf("if = %T, want *BinOp", cond.If)
	}
	if _, ok := cond.Then.(*UnOp); !ok {
		t.Errorf("then = %T, want *UnOp", cond.Then)
	}
}

func TestFromMIRFnArity(t *testing.T) {
	term := lowerSrc(t, "fn add(a: Int, b: Int): Int do a + b end")
	fn := term.(*Let).Value.(*Fn)
	if fn.Arity != 2 || fn.Rec || fn.Name != "add" {
		t.Errorf("fn = %q arity=%d rec=%v, want add/2/false", fn.Name, fn.Arity, fn.Rec)
	}
}

func TestFromMIRRecFlag(t *testing.T) {
	term := lowerSrc(t, "fn rec f(n: Int): Int do f(n) end")
	fn := term.(*Let).Value.(*Fn)
	if !fn.Rec {
		t.Error("Rec = false, want true")
	}
}

func TestFromMIREmptyBlock(t *testing.T) {
	term := lowerSrc(t, "")
	lit, ok := term.(*Lit)
	if !ok {
		t.Fatalf("term = %T, want *Lit", term)
	}
	if lit.Value.Kind != ast.LitUnit {
		t.Errorf("value = %v, want unit", lit.Value)
	}
}

func TestFromMIRKeepsIndices(t *testing.T) {
	term := lowerSrc(t, "let a = 1\nlet b = 2\na - b")
	bin := term.(*Let).Body.(*Let).Body.(*BinOp)
	if bin.Left.(*Var).Index != 1 || bin.Right.(*Var).Index != 0 {
		t.Errorf("indices = %d, %d, want 1, 0",
			bin.Left.(*Var).Index, bin.Right.(*Var).Index)
	}
}
