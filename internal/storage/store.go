// Package storage is the filesystem provider the index pipeline reads sources
// from and writes assets and the index into.
package storage

import (
	"errors"
	"time"
)

// Provider abstracts every filesystem operation the pipeline performs.
// Paths are plain OS paths; implementations must not rewrite them.
type Provider interface {
	// ListFiles returns the regular files directly inside dir whose name ends
	// with suffix, sorted lexically by name. Subdirectories are not entered.
	// Symlinks to regular files count as regular files.
	ListFiles(dir, suffix string) ([]string, error)

	// WalkFiles is ListFiles over the whole tree rooted at dir.
	WalkFiles(dir, suffix string) ([]string, error)

	// ListEntries returns the names of every entry directly inside dir,
	// files and directories alike, sorted lexically.
	ListEntries(dir string) ([]string, error)

	// Stat returns the creation and modification timestamps of path.
	Stat(path string) (FileTimes, error)

	// ReadText reads the whole file as UTF-8 text.
	ReadText(path string) (string, error)

	// CopyFile copies src to dst, preserving bytes, permission bits and
	// timestamps. An existing dst is replaced.
	CopyFile(src, dst string) error

	// Exists reports whether a regular file exists at path.
	Exists(path string) bool

	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir string) error

	// WriteFileAtomic replaces path with data so that readers observe either
	// the old or the new content, never a partial write.
	WriteFileAtomic(path string, data []byte) error
}

// FileTimes holds the timestamps the pipeline derives document dates from.
type FileTimes struct {
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// ErrNotRegular is returned when a path expected to be a file is something else.
var ErrNotRegular = errors.New("not a regular file")
