package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// OSProvider is the Provider backed by the local filesystem.
type OSProvider struct {
	dirMode  os.FileMode
	fileMode os.FileMode
}

// NewOSProvider creates a provider that creates directories 0o755 and index files 0o644.
func NewOSProvider() *OSProvider {
	return &OSProvider{dirMode: 0o755, fileMode: 0o644}
}

// ListFiles returns the regular files directly inside dir ending with suffix.
// Symlinks are followed; a link to a regular file is listed under the link's path.
func (p *OSProvider) ListFiles(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !isRegular(path, entry) {
			continue
		}
		files = append(files, path)
	}
	// os.ReadDir is already sorted by filename; keep the contract explicit.
	sort.Strings(files)
	return files, nil
}

// WalkFiles returns every regular file under dir ending with suffix.
// Symlinked files are included; symlinked directories are not entered.
func (p *OSProvider) WalkFiles(dir, suffix string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}
		if isRegular(path, d) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ListEntries returns the names of everything directly inside dir, sorted.
func (p *OSProvider) ListEntries(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// isRegular reports whether entry is a regular file, resolving symlinks.
// Dangling links are not regular.
func isRegular(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Stat returns creation and modification times for path.
func (p *OSProvider) Stat(path string) (FileTimes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileTimes{}, err
	}
	return FileTimes{
		CreatedAt:  creationTime(path, info),
		ModifiedAt: info.ModTime(),
	}, nil
}

// ReadText reads path fully.
func (p *OSProvider) ReadText(path string) (string, error) {
	// #nosec G304 - paths come from the configured source directory listing
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CopyFile copies src to dst through a sibling temp file, then carries over
// permission bits and access/modification times.
func (p *OSProvider) CopyFile(src, dst string) error {
	// #nosec G304 - src is an image path resolved against the document directory
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegular, src)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		cleanup()
		return err
	}
	if err := os.Chtimes(tmpName, accessTime(info), info.ModTime()); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		cleanup()
		return err
	}
	return nil
}

// Exists reports whether a regular file exists at path.
func (p *OSProvider) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// MkdirAll creates dir and parents.
func (p *OSProvider) MkdirAll(dir string) error {
	return os.MkdirAll(dir, p.dirMode)
}

// WriteFileAtomic writes data to a temp file in the target directory, syncs
// it and renames it over path.
func (p *OSProvider) WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, p.dirMode); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, p.fileMode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	committed = true
	return nil
}
