package source

import "testing"

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.lm", []byte("let a = 1\nlet b = 2\na + b"))

	tests := []struct {
		name      string
		span      Span
		wantStart LineCol
		wantEnd   LineCol
	}{
		{
			name:      "first line start",
			span:      Span{File: id, Start: 0, End: 3},
			wantStart: LineCol{Line: 1, Col: 1},
			wantEnd:   LineCol{Line: 1, Col: 4},
		},
		{
			name:      "second line binder",
			span:      Span{File: id, Start: 14, End: 15},
			wantStart: LineCol{Line: 2, Col: 5},
			wantEnd:   LineCol{Line: 2, Col: 6},
		},
		{
			name:      "last line expression",
			span:      Span{File: id, Start: 20, End: 25},
			wantStart: LineCol{Line: 3, Col: 1},
			wantEnd:   LineCol{Line: 3, Col: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := fs.Resolve(tt.span)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Resolve() = %+v, %+v, want %+v, %+v", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestFileLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.lm", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := f.Line(tt.line); got != tt.want {
			t.Errorf("Line(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestNormalizeOnLoad(t *testing.T) {
	content, changed := normalizeCRLF([]byte("a\r\nb"))
	if !changed || string(content) != "a\nb" {
		t.Errorf("normalizeCRLF = %q, changed=%v", content, changed)
	}
	content, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !had || string(content) != "x" {
		t.Errorf("removeBOM = %q, had=%v", content, had)
	}
}
