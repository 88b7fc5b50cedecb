// Package incremental decides whether the index has to be regenerated.
//
// Staleness is a whole-collection signal: a single source file modified after
// the previous index forces a full rebuild.
package incremental

import (
	"errors"
	"io/fs"
	"time"

	ferrors "git.home.luguber.info/inful/blogindex/internal/foundation/errors"
	"git.home.luguber.info/inful/blogindex/internal/storage"
)

// IsStale reports whether an index written at previous is outdated by
// sources. A nil previous means no index exists.
func IsStale(previous *time.Time, sources []time.Time) bool {
	if previous == nil {
		return true
	}
	for _, mod := range sources {
		if mod.After(*previous) {
			return true
		}
	}
	return false
}

// Decision is the outcome of a staleness check.
type Decision struct {
	Stale bool
	// Reason is a short machine-friendly label: "no_index", "source_newer",
	// or "up_to_date".
	Reason string
	// Newest is the most recent source modification time seen.
	Newest time.Time
}

// Checker compares the index file against the source tree on a Provider.
type Checker struct {
	provider  storage.Provider
	extension string
}

// NewChecker creates a checker considering files ending with extension.
func NewChecker(provider storage.Provider, extension string) *Checker {
	return &Checker{provider: provider, extension: extension}
}

// IsStale reports whether the index at indexPath is outdated by any file
// under sourceDir. The source tree is walked recursively.
func (c *Checker) IsStale(indexPath, sourceDir string) (bool, error) {
	d, err := c.Check(indexPath, sourceDir)
	return d.Stale, err
}

// Check is IsStale with the reason attached.
func (c *Checker) Check(indexPath, sourceDir string) (Decision, error) {
	var previous *time.Time
	indexTimes, err := c.provider.Stat(indexPath)
	switch {
	case err == nil:
		previous = &indexTimes.ModifiedAt
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Decision{Stale: true}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "stat index file").
			WithContext("path", indexPath).
			Build()
	}
	if previous == nil {
		return Decision{Stale: true, Reason: "no_index"}, nil
	}

	files, err := c.provider.WalkFiles(sourceDir, c.extension)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Decision{Stale: true}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "walk source directory").
			WithContext("path", sourceDir).
			Build()
	}

	sources := make([]time.Time, 0, len(files))
	var newest time.Time
	for _, f := range files {
		ft, err := c.provider.Stat(f)
		if err != nil {
			return Decision{Stale: true}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "stat source file").
				WithContext("path", f).
				Build()
		}
		sources = append(sources, ft.ModifiedAt)
		if ft.ModifiedAt.After(newest) {
			newest = ft.ModifiedAt
		}
	}

	if IsStale(previous, sources) {
		return Decision{Stale: true, Reason: "source_newer", Newest: newest}, nil
	}
	return Decision{Stale: false, Reason: "up_to_date", Newest: newest}, nil
}
