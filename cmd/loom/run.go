package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"loom/internal/driver"
	"loom/internal/source"
	"loom/internal/ui"
)

var (
	runJobs    int
	runNoCache bool
	runUI      string
)

func init() {
	runCmd.Flags().IntVar(&runJobs, "jobs", 0, "max files evaluated in parallel (0 = all CPUs)")
	runCmd.Flags().BoolVar(&runNoCache, "no-cache", false, "skip the result cache")
	runCmd.Flags().StringVar(&runUI, "ui", "auto", "interactive progress (auto|on|off)")

	checkCmd.Flags().IntVar(&runJobs, "jobs", 0, "max files checked in parallel (0 = all CPUs)")
}

var runCmd = &cobra.Command{
	Use:   "run [paths...]",
	Short: "Evaluate loom programs",
	Long:  `Run type-checks and evaluates each file, printing its value and type.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles(cmd, args, driver.ModeEval)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Type-check loom programs without evaluating",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles(cmd, args, driver.ModeCheck)
	},
}

func runFiles(cmd *cobra.Command, args []string, mode driver.Mode) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	paths, err := resolvePaths(args, cfg)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .lm files to run")
	}

	opts := driver.Options{Mode: mode, Jobs: cfg.jobs}
	if mode == driver.ModeEval && !cfg.noCache {
		cache, err := driver.OpenDiskCache("loom")
		if err == nil {
			opts.Cache = cache
		}
		// A cache failure degrades to uncached runs.
	}

	var fileSet *source.FileSet
	var outcomes []driver.Outcome
	if useTUI(mode) && len(paths) > 1 {
		fileSet, outcomes, err = runWithProgress(cmd.Context(), paths, opts)
	} else {
		fileSet, outcomes, err = driver.RunFiles(cmd.Context(), paths, opts)
	}
	if err != nil {
		return err
	}

	failed := printOutcomes(cmd.OutOrStdout(), cmd.ErrOrStderr(), fileSet, outcomes, cfg.colorize())
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(outcomes))
	}
	return nil
}

// resolvePaths expands the argument list, falling back to the manifest
// entry file when no arguments are given.
func resolvePaths(args []string, cfg cliConfig) ([]string, error) {
	if len(args) == 0 {
		if cfg.manifest != nil && cfg.manifest.Package.Entry != "" {
			args = []string{cfg.manifest.Package.Entry}
		} else {
			args = []string{"."}
		}
	}
	return driver.ExpandPaths(args)
}

func useTUI(mode driver.Mode) bool {
	if mode != driver.ModeEval {
		return false
	}
	switch runUI {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// runWithProgress drives RunFiles behind a Bubble Tea progress view.
func runWithProgress(ctx context.Context, paths []string, opts driver.Options) (*source.FileSet, []driver.Outcome, error) {
	events := make(chan driver.Event, len(paths)*2)
	opts.OnEvent = func(ev driver.Event) { events <- ev }

	program := tea.NewProgram(ui.NewProgressModel("loom run", paths, events))

	var fileSet *source.FileSet
	var outcomes []driver.Outcome
	var runErr error
	go func() {
		fileSet, outcomes, runErr = driver.RunFiles(ctx, paths, opts)
		close(events)
	}()

	if _, err := program.Run(); err != nil {
		return nil, nil, err
	}
	return fileSet, outcomes, runErr
}
