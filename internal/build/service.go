package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/blogindex/internal/config"
)

// BuildService is the canonical interface for generating the index.
type BuildService interface {
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs of one run.
type BuildRequest struct {
	Config  *config.Config
	Options BuildOptions
}

// BuildOptions modifies run behavior.
type BuildOptions struct {
	// Force regenerates even when the index is up to date.
	Force bool
}

// LatestPost identifies the newest document of an index.
type LatestPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// BuildResult is the summary of one run.
type BuildResult struct {
	RunID      string
	Status     BuildStatus
	SkipReason string

	// Total is the number of documents in the index after the run. For
	// skipped runs it is read from the existing index when possible.
	Total int
	// Generated is the number of documents parsed by this run.
	Generated int
	Latest    *LatestPost

	AssetsCopied  int
	AssetsMissing int

	DataFile  string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// BuildStatus represents the outcome of a run.
type BuildStatus string

const (
	BuildStatusGenerated BuildStatus = "generated"
	BuildStatusSkipped   BuildStatus = "skipped"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the run left a current index behind.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusGenerated || s == BuildStatusSkipped
}
