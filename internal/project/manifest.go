// Package project locates and reads loom.toml, the optional per-project
// manifest. Everything in it has a flag or built-in default, so running
// without a manifest always works.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the project root is identified by.
const ManifestName = "loom.toml"

// Manifest is the decoded loom.toml.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Run     RunSection     `toml:"run"`
}

// PackageSection names the project and its entry file.
type PackageSection struct {
	Name  string `toml:"name"`
	Entry string `toml:"entry"`
}

// RunSection holds evaluation defaults overridable from the command
// line.
type RunSection struct {
	Jobs    int    `toml:"jobs"`
	Color   string `toml:"color"`
	NoCache bool   `toml:"no-cache"`
}

// ErrPackageNameMissing indicates that [package].name is missing.
var ErrPackageNameMissing = errors.New("missing [package].name")

// Load parses a manifest file.
func Load(path string) (Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") || strings.TrimSpace(m.Package.Name) == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	m.Package.Name = strings.TrimSpace(m.Package.Name)
	if m.Run.Color == "" {
		m.Run.Color = "auto"
	}
	switch m.Run.Color {
	case "auto", "always", "never":
	default:
		return Manifest{}, fmt.Errorf("%s: invalid [run].color %q", path, m.Run.Color)
	}
	return m, nil
}

// FindManifest walks up from startDir to locate loom.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindRoot returns the directory containing loom.toml, if any.
func FindRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}
