// Package version provides build information for the medalprep binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const (
	unknownValue     = "unknown"
	commitHashLength = 7
)

// Build-time variables set by ldflags
var (
	Version   = "dev"
	BuildDate = unknownValue
	GitCommit = unknownValue
	GoVersion = runtime.Version()
)

// BuildInfo contains build information
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty"`
	Module    string `json:"module"`
}

// Info returns build information
func Info() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: GoVersion,
		Dirty:     strings.HasSuffix(GitCommit, "-dirty"),
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.Module = buildInfo.Main.Path
		if info.GitCommit == unknownValue {
			for _, setting := range buildInfo.Settings {
				if setting.Key == "vcs.revision" && setting.Value != "" {
					info.GitCommit = setting.Value
				}
			}
		}
	}

	return info
}

// ShortCommit returns the abbreviated commit hash.
func (b BuildInfo) ShortCommit() string {
	commit := strings.TrimSuffix(b.GitCommit, "-dirty")
	if len(commit) > commitHashLength {
		commit = commit[:commitHashLength]
	}
	return commit
}

// String returns a formatted version string
func (b BuildInfo) String() string {
	var sb strings.Builder
	sb.WriteString("medalprep\n")
	sb.WriteString(fmt.Sprintf("Version: %s", b.Version))
	if b.Dirty {
		sb.WriteString(" (dirty)")
	}
	sb.WriteString("\n")

	if b.BuildDate != unknownValue {
		sb.WriteString(fmt.Sprintf("Build Date: %s\n", b.BuildDate))
	}
	if b.GitCommit != unknownValue {
		sb.WriteString(fmt.Sprintf("Git Commit: %s\n", b.ShortCommit()))
	}

	sb.WriteString(fmt.Sprintf("Go Version: %s\n", b.GoVersion))

	if b.Module != "" {
		sb.WriteString(fmt.Sprintf("Module: %s\n", b.Module))
	}

	return sb.String()
}

// IsRelease returns true if this is a release version (not dev)
func IsRelease() bool {
	return Version != "dev" && !strings.Contains(Version, "-")
}
