// Package build provides version and build information for relnotes.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// Info is the build metadata shown by 'relnotes version'.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"built" yaml:"built"`
	GoVersion string `json:"go" yaml:"go"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Current returns the metadata of the running binary.
func Current() Info {
	return Info{
		Version:   Version,
		Commit:    ShortCommit(Commit),
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// ShortCommit truncates a commit hash to 8 characters.
func ShortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
