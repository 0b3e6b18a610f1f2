package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"loom/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "Loom language toolchain",
	Long:  `Loom is an expression-oriented functional language with a checker, an evaluator and a REPL`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|always|never)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
