package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"loom/internal/ast"
	"loom/internal/diag"
	"loom/internal/parser"
	"loom/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a loom file and dump its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		fileSet := source.NewFileSet()
		id, err := fileSet.Load(args[0])
		if err != nil {
			return err
		}

		block, parseErr := parser.Parse(fileSet.Get(id))
		if parseErr != nil {
			diag.NewRenderer(fileSet, cfg.colorize()).RenderError(cmd.ErrOrStderr(), parseErr)
			return fmt.Errorf("parse failed")
		}

		ast.Dump(cmd.OutOrStdout(), block)
		return nil
	},
}
