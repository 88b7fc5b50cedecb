// Package bootstrap seeds an empty source folder with sample posts.
package bootstrap

import (
	"embed"
	"errors"
	"io/fs"
	"path"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/blogindex/internal/foundation/errors"
	"git.home.luguber.info/inful/blogindex/internal/storage"
)

//go:embed samples/*.md
var samples embed.FS

// SampleNames lists the sample files written by EnsureSamples.
func SampleNames() []string {
	entries, _ := fs.ReadDir(samples, "samples")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// EnsureSamples creates dir when missing and, when it has no entries at all,
// writes the sample posts into it. It reports whether samples were written.
func EnsureSamples(provider storage.Provider, dir string) (bool, error) {
	if err := provider.MkdirAll(dir); err != nil {
		return false, ferrors.WrapError(err, ferrors.CategoryFileSystem, "create source directory").
			WithContext("path", dir).
			Build()
	}
	entries, err := provider.ListEntries(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, ferrors.WrapError(err, ferrors.CategoryFileSystem, "list source directory").
			WithContext("path", dir).
			Build()
	}
	if len(entries) > 0 {
		return false, nil
	}

	for _, name := range SampleNames() {
		data, err := samples.ReadFile(path.Join("samples", name))
		if err != nil {
			return false, ferrors.WrapError(err, ferrors.CategoryInternal, "read embedded sample").Build()
		}
		target := filepath.Join(dir, name)
		if err := provider.WriteFileAtomic(target, data); err != nil {
			return false, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write sample post").
				WithContext("path", target).
				Build()
		}
	}
	return true, nil
}
