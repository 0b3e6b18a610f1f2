// Package driver wires the pipeline stages together: parse, lower,
// check, lower again, evaluate. It owns file loading, the result
// cache and parallel multi-file runs.
package driver

import (
	"loom/internal/diag"
	"loom/internal/lir"
	"loom/internal/mir"
	"loom/internal/parser"
	"loom/internal/sema"
	"loom/internal/source"
	"loom/internal/vm"
)

// Mode selects how far the pipeline runs.
type Mode uint8

const (
	// ModeEval checks and evaluates.
	ModeEval Mode = iota
	// ModeCheck stops after type checking.
	ModeCheck
)

// Outcome is the result of running one file. Exactly one of the
// failure fields is set on failure; on success Type holds the display
// form of the program's type and, in ModeEval, Value its result.
type Outcome struct {
	Path   string
	FileID source.FileID

	Type  string
	Value vm.Value

	Err    diag.LangError
	Fault  *vm.Fault
	Cached bool
}

// Failed reports whether the run produced no value.
func (o Outcome) Failed() bool {
	return o.Err != nil || o.Fault != nil
}

// Run executes one already-loaded file.
func Run(fs *source.FileSet, id source.FileID, mode Mode) Outcome {
	file := fs.Get(id)
	out := Outcome{Path: file.Path, FileID: id}

	block, parseErr := parser.Parse(file)
	if parseErr != nil {
		out.Err = parseErr
		return out
	}

	term, lowerErr := mir.FromAST(block)
	if lowerErr != nil {
		out.Err = lowerErr
		return out
	}

	ty, tyErr := sema.Check(term)
	if tyErr != nil {
		out.Err = tyErr
		return out
	}
	out.Type = ty.String()

	if mode == ModeCheck {
		return out
	}

	value, fault := vm.New().Evaluate(lir.FromMIR(term))
	if fault != nil {
		out.Fault = fault
		return out
	}
	out.Value = value
	return out
}
