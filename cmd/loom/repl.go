package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"loom/internal/ast"
	"loom/internal/diag"
	"loom/internal/driver"
	"loom/internal/parser"
	"loom/internal/source"
)

const (
	promptMain  = "loom> "
	promptCont  = "  ... "
	historyFile = ".loom_history"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive loom session",
	Long: `The REPL evaluates one expression at a time. Bindings (let and named
functions) persist for the rest of the session.

Commands:
  :type <expr>  show an expression's type without evaluating it
  :reset        drop all session bindings
  :quit         leave the session`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runRepl(cfg)
	},
}

// replSession accumulates accepted bindings; every input is evaluated
// as prelude plus input, so evaluation stays a pure function of the
// session text.
type replSession struct {
	prelude  []string
	colorize bool
}

func runRepl(cfg cliConfig) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	sess := &replSession{colorize: cfg.colorize()}
	fmt.Println("loom repl; :quit to leave")

	for {
		code, ok := readInput(ln)
		if !ok {
			fmt.Println()
			break
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if quit := sess.command(trimmed); quit {
				break
			}
			ln.AppendHistory(trimmed)
			continue
		}

		sess.eval(code, driver.ModeEval)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// readInput accumulates lines until the input parses or fails with a
// definitive error. The false return means EOF.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the current input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if incompleteInput(src) {
			continue
		}
		return src, true
	}
}

// incompleteInput probes the parser: input that stops at end of file
// needs more lines, anything else is handed to the evaluator as is.
func incompleteInput(src string) bool {
	fs := source.NewFileSet()
	id := fs.AddVirtual("repl", []byte(src))
	_, err := parser.Parse(fs.Get(id))
	if err == nil {
		return false
	}
	return strings.Contains(err.Msg, "end of file") || strings.Contains(err.Msg, "EOF")
}

func (s *replSession) command(input string) (quit bool) {
	cmd, rest, _ := strings.Cut(input, " ")
	switch cmd {
	case ":quit", ":q":
		return true
	case ":reset":
		s.prelude = nil
		fmt.Println("session cleared")
	case ":type", ":t":
		if strings.TrimSpace(rest) == "" {
			fmt.Println("usage: :type <expr>")
			return false
		}
		s.eval(rest, driver.ModeCheck)
	case ":help", ":h":
		fmt.Println(":type <expr>  show a type\n:reset        drop bindings\n:quit         leave")
	default:
		fmt.Printf("unknown command %s\n", cmd)
	}
	return false
}

// eval runs prelude plus input. Inputs that are bindings and succeed
// join the prelude.
func (s *replSession) eval(input string, mode driver.Mode) {
	src := strings.Join(append(append([]string{}, s.prelude...), input), "\n")
	fs := source.NewFileSet()
	id := fs.AddVirtual("repl", []byte(src))

	out := driver.Run(fs, id, mode)
	if out.Err != nil {
		diag.NewRenderer(fs, s.colorize).RenderError(os.Stderr, out.Err)
		return
	}
	if out.Fault != nil {
		fmt.Fprintf(os.Stderr, "fault: %s\n", out.Fault.Msg)
		return
	}

	if mode == driver.ModeCheck {
		fmt.Println(out.Type)
		return
	}
	fmt.Printf("%s : %s\n", out.Value, out.Type)

	if isBinding(input) {
		s.prelude = append(s.prelude, input)
	}
}

// isBinding reports whether the input introduces a name worth keeping.
func isBinding(input string) bool {
	fs := source.NewFileSet()
	id := fs.AddVirtual("repl", []byte(input))
	block, err := parser.Parse(fs.Get(id))
	if err != nil || len(block.Nodes) == 0 {
		return false
	}
	for _, n := range block.Nodes {
		switch n := n.(type) {
		case *ast.LetBind:
		case *ast.FnRecDef:
		case *ast.FnDef:
			if n.Name == nil {
				return false
			}
		default:
			return false
		}
	}
	return true
}
