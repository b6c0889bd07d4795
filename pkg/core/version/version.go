// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     version
// Description: Build and version metadata
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Set at build time via -ldflags "-X github.com/msto63/toypeg/pkg/core/version.GitCommit=..."
var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the version information of the running binary
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a one-line summary
func (i Info) String() string {
	return fmt.Sprintf("toypeg v%s (%s, built %s, %s %s)", i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
