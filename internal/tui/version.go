package tui

import "fmt"

// Build metadata, set with -ldflags.
var (
	AppVersion = "0"
	GitCommit  = "unknown"
	BuildTime  = "unknown"
)

func versionLabel() string {
	label := AppVersion
	if GitCommit != "unknown" || BuildTime != "unknown" {
		label = fmt.Sprintf("%s (%s %s)", AppVersion, GitCommit, BuildTime)
	}
	return label
}
