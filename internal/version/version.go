package version

import "fmt"

// Version contains the application version information.
// Set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/blogindex/internal/version.Version=v1.0.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version line printed by `blogindex --version`.
func String() string {
	return fmt.Sprintf("blogindex %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
