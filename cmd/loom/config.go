package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"loom/internal/project"
)

// cliConfig is the merged view of flags and the optional loom.toml.
// Flag values win, then the manifest, then built-in defaults.
type cliConfig struct {
	color    string
	jobs     int
	noCache  bool
	manifest *project.Manifest
}

func loadConfig(cmd *cobra.Command) (cliConfig, error) {
	cfg := cliConfig{color: "auto"}

	if path, ok, err := project.FindManifest("."); err != nil {
		return cfg, err
	} else if ok {
		m, err := project.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg.manifest = &m
		cfg.color = m.Run.Color
		cfg.jobs = m.Run.Jobs
		cfg.noCache = m.Run.NoCache
	}

	if flag := cmd.Flags().Lookup("jobs"); flag != nil && flag.Changed {
		cfg.jobs, _ = cmd.Flags().GetInt("jobs")
	}
	if flag := cmd.Flags().Lookup("no-cache"); flag != nil && flag.Changed {
		cfg.noCache, _ = cmd.Flags().GetBool("no-cache")
	}
	if colorFlag, _ := cmd.Flags().GetString("color"); colorFlag != "" {
		cfg.color = strings.ToLower(strings.TrimSpace(colorFlag))
	}

	switch cfg.color {
	case "auto", "always", "never":
	default:
		return cfg, fmt.Errorf("invalid --color value %q (expected auto|always|never)", cfg.color)
	}
	return cfg, nil
}

func (c cliConfig) colorize() bool {
	switch c.color {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(os.Stderr)
	}
}
