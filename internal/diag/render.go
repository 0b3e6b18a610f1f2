package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"loom/internal/source"
)

// Renderer writes diagnostics in a location-first line format:
//
//	path:line:col: error: message
//	    source line
//	    ^~~~
//
// The underline covers the span's display width on its first line.
type Renderer struct {
	fs       *source.FileSet
	severity *color.Color
	locus    *color.Color
	caret    *color.Color
}

// NewRenderer builds a renderer over fs. Colors are emitted only when
// colorize is set; callers decide based on the output terminal.
func NewRenderer(fs *source.FileSet, colorize bool) *Renderer {
	r := &Renderer{
		fs:       fs,
		severity: color.New(color.FgRed, color.Bold),
		locus:    color.New(color.Bold),
		caret:    color.New(color.FgRed),
	}
	if colorize {
		r.severity.EnableColor()
		r.locus.EnableColor()
		r.caret.EnableColor()
	} else {
		r.severity.DisableColor()
		r.locus.DisableColor()
		r.caret.DisableColor()
	}
	return r
}

// Render writes one diagnostic with its source context.
func (r *Renderer) Render(w io.Writer, d Diagnostic) {
	file := r.fs.Get(d.Span.File)
	start, end := r.fs.Resolve(d.Span)

	fmt.Fprintf(w, "%s %s %s\n",
		r.locus.Sprintf("%s:%d:%d:", file.Path, start.Line, start.Col),
		r.severity.Sprintf("%s:", d.Severity),
		d.Message)

	line := file.Line(start.Line)
	if line == "" && start.Col == 1 {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)

	prefix := line
	if int(start.Col)-1 <= len(line) {
		prefix = line[:start.Col-1]
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))

	width := r.spanWidth(line, start, end)
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "    %s%s\n", pad, r.caret.Sprint(marker))
}

// RenderError is shorthand for rendering a stage error.
func (r *Renderer) RenderError(w io.Writer, err LangError) {
	r.Render(w, FromError(err))
}

// spanWidth measures the underlined part of the first line in display
// cells. Multi-line spans underline to the end of the first line.
func (r *Renderer) spanWidth(line string, start, end source.LineCol) int {
	from := int(start.Col) - 1
	to := len(line)
	if end.Line == start.Line && int(end.Col)-1 < to {
		to = int(end.Col) - 1
	}
	if from >= to {
		return 1
	}
	w := runewidth.StringWidth(line[from:to])
	if w < 1 {
		return 1
	}
	return w
}
