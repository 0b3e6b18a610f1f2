// Package diag turns pipeline errors into user-facing diagnostics and
// renders them with source context.
package diag

import "loom/internal/source"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// LangError is the shape every pipeline stage reports: a message tied
// to a span. The lexer, parser, lowering and type checking errors all
// satisfy it.
type LangError interface {
	error
	Loc() source.Span
}

// Diagnostic is one renderable report.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     source.Span
}

// FromError wraps a stage error as an error diagnostic.
func FromError(err LangError) Diagnostic {
	return Diagnostic{Severity: SevError, Message: err.Error(), Span: err.Loc()}
}
