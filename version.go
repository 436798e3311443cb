package netsuite

import (
	"fmt"
	"runtime"
)

var (
	// Version is the library semantic version.
	Version = "0.1.0"
	// GitCommit is the git SHA (inject via -ldflags at build time).
	GitCommit = "unknown"
	// GoVersion records the Go toolchain version used.
	GoVersion = runtime.Version()
)

// GetVersion returns a human-readable version string.
func GetVersion() string {
	return fmt.Sprintf("netsuite-sdk v%s (commit: %s, go: %s)", Version, GitCommit, GoVersion)
}
