package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"loom/internal/diag"
	"loom/internal/driver"
	"loom/internal/source"
)

// printOutcomes reports every outcome and returns the number of
// failures. Successes go to out, diagnostics to errOut.
func printOutcomes(out, errOut io.Writer, fs *source.FileSet, outcomes []driver.Outcome, colorize bool) int {
	renderer := diag.NewRenderer(fs, colorize)
	faultColor := color.New(color.FgRed, color.Bold)
	if colorize {
		faultColor.EnableColor()
	} else {
		faultColor.DisableColor()
	}

	failed := 0
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
			renderer.RenderError(errOut, o.Err)
		case o.Fault != nil:
			failed++
			fmt.Fprintf(errOut, "%s %s %s\n", o.Path+":", faultColor.Sprint("fault:"), o.Fault.Msg)
		case o.Value != nil:
			suffix := ""
			if o.Cached {
				suffix = " (cached)"
			}
			fmt.Fprintf(out, "%s: %s : %s%s\n", o.Path, o.Value, o.Type, suffix)
		default:
			fmt.Fprintf(out, "%s: ok : %s\n", o.Path, o.Type)
		}
	}
	return failed
}
