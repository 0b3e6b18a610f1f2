// Package version carries build metadata for the loom CLI.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// Set at build time via -ldflags "-X loom/internal/version.Version=...".
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var releaseColor = color.New(color.FgMagenta, color.Bold)

// Pretty renders the version for terminal output. The release part is
// highlighted; a pre-release suffix such as "-dev" stays plain.
func Pretty() string {
	rel, suffix, found := strings.Cut(Version, "-")
	if !found {
		return releaseColor.Sprint(Version)
	}
	return releaseColor.Sprint(rel) + "-" + suffix
}
