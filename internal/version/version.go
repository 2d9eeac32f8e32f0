// Package version holds build metadata injected with ldflags, for example:
//
//	go build -ldflags "-X github.com/jmylchreest/swatch/internal/version.Version=1.2.0"
package version

import (
	"fmt"
	"runtime"
)

// Name is the application name used in version strings and the HTTP User-Agent.
const Name = "swatch"

var (
	// Version is the semantic version of the build.
	Version = "dev"

	// Commit is the git commit the build was made from.
	Commit = "unknown"

	// Date is the build time in RFC3339 format.
	Date = "unknown"
)

// Info is the structured form printed by "swatch version --json".
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns the build metadata.
func GetInfo() Info {
	return Info{
		Name:      Name,
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one-line human-readable description of the build.
func String() string {
	info := GetInfo()
	if Commit == "unknown" || Date == "unknown" {
		return fmt.Sprintf("%s version %s (%s, %s)", Name, info.Version, info.GoVersion, info.Platform)
	}
	return fmt.Sprintf("%s version %s (commit: %s, built: %s, %s, %s)",
		Name, info.Version, shortCommit(info.Commit), info.Date, info.GoVersion, info.Platform)
}

// UserAgent returns the value sent in the User-Agent header of outbound requests.
func UserAgent() string {
	return Name + "/" + Version
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
