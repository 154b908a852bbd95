package version

import (
	"fmt"
	"runtime"
	"strings"
)

// ProductName is shown in titles and version output
const ProductName = "Mailman3 Commander"

var (
	// Version is the semantic version number
	Version = "0.1.1"

	// Author is credited in the version banner
	Author = "Buanzo <buanzo@buanzo.com.ar>"

	// GitCommit is the git commit hash (injected at build time)
	GitCommit = "unknown"

	// BuildDate is the build date (injected at build time)
	BuildDate = "unknown"
)

// Info contains version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns comprehensive version information
func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// GetVersionString returns "Mailman3 Commander v0.1.1 by <author>"
func GetVersionString() string {
	s := fmt.Sprintf("%s v%s", ProductName, Version)
	if Author != "" {
		s += " by " + Author
	}
	return s
}

// UserAgent identifies the client to the REST API
func UserAgent() string {
	return "mm3commander/" + Version
}

// GetDetailedVersionString returns a detailed version string for --version output
func GetDetailedVersionString() string {
	info := GetInfo()

	var b strings.Builder
	b.WriteString(GetVersionString() + "\n")
	commit := info.GitCommit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	fmt.Fprintf(&b, "Git commit: %s\n", commit)
	fmt.Fprintf(&b, "Build date: %s\n", info.BuildDate)
	fmt.Fprintf(&b, "Go version: %s\n", info.GoVersion)
	fmt.Fprintf(&b, "Platform: %s\n", info.Platform)
	if IsRelease() {
		b.WriteString("Build: release")
	} else {
		b.WriteString("Build: development")
	}
	return b.String()
}

// IsRelease returns true if this is a release version (not a dev build)
func IsRelease() bool {
	return Version != "" && GitCommit != "unknown" && !strings.Contains(Version, "dev")
}
