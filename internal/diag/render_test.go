package diag

import (
	"strings"
	"testing"

	"loom/internal/source"
)

func TestRenderCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.lm", []byte("let x = 1 + true\nx"))

	var buf strings.Builder
	r := NewRenderer(fs, false)
	r.Render(&buf, Diagnostic{
		Severity: SevError,
		Message:  "unexpected type: expected Int, found Bool",
		Span:     source.Span{File: id, Start: 12, End: 16},
	})

	want := "main.lm:1:13: error: unexpected type: expected Int, found Bool\n" +
		"    let x = 1 + true\n" +
		"                ^~~~\n"
	if buf.String() != want {
		t.Errorf("rendered:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestRenderPointDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.lm", []byte("if true do 1 end"))

	var buf strings.Builder
	r := NewRenderer(fs, false)
	r.Render(&buf, Diagnostic{
		Severity: SevError,
		Message:  "expected else, found end",
		Span:     source.Span{File: id, Start: 13, End: 16},
	})

	out := buf.String()
	if !strings.HasPrefix(out, "main.lm:1:14: error: expected else, found end\n") {
		t.Errorf("header wrong:\n%q", out)
	}
	if !strings.Contains(out, "^~~") {
		t.Errorf("underline missing:\n%q", out)
	}
}

func TestRenderSecondLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.lm", []byte("let a = 1\nb"))

	var buf strings.Builder
	r := NewRenderer(fs, false)
	r.Render(&buf, Diagnostic{
		Severity: SevError,
		Message:  "name b is not bound",
		Span:     source.Span{File: id, Start: 10, End: 11},
	})

	want := "main.lm:2:1: error: name b is not bound\n" +
		"    b\n" +
		"    ^\n"
	if buf.String() != want {
		t.Errorf("rendered:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestSeverityString(t *testing.T) {
	if SevError.String() != "error" || SevWarning.String() != "warning" || SevInfo.String() != "info" {
		t.Error("severity names wrong")
	}
}
