package version

import (
	"fmt"
	"runtime/debug"
)

// develVersion is the placeholder left in Version by local builds.
const develVersion = "dev"

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = develVersion
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	if Version != develVersion {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	return fmt.Sprintf("mcprobe %s, commit: %s, built at: %s", Short(), Commit, BuildTime)
}
