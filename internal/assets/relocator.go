// Package assets relocates images referenced from a document into the flat
// public asset directory and rewrites the references to their public URL.
package assets

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/blogindex/internal/foundation/errors"
	"git.home.luguber.info/inful/blogindex/internal/logfields"
	"git.home.luguber.info/inful/blogindex/internal/markdown"
	"git.home.luguber.info/inful/blogindex/internal/observability"
	"git.home.luguber.info/inful/blogindex/internal/storage"
)

// Stats counts what one Relocate call did.
type Stats struct {
	Copied  int
	Missing int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Copied += other.Copied
	s.Missing += other.Missing
}

// Relocator copies referenced images into AssetDir as {docID}_{basename}
// and points references at URLPrefix/{docID}_{basename}.
type Relocator struct {
	provider  storage.Provider
	assetDir  string
	urlPrefix string
}

// NewRelocator creates a relocator writing into assetDir.
func NewRelocator(provider storage.Provider, assetDir, urlPrefix string) *Relocator {
	return &Relocator{provider: provider, assetDir: assetDir, urlPrefix: urlPrefix}
}

// AssetName is the collision-safe file name an image gets in the asset directory.
func AssetName(docID, sourcePath string) string {
	return docID + "_" + filepath.Base(sourcePath)
}

// Relocate rewrites every inline image in body whose target resolves to an
// existing file under docDir. References that are remote, absolute or point
// at nothing are left byte-for-byte unchanged.
func (r *Relocator) Relocate(ctx context.Context, docID, docDir, body string) (string, Stats, error) {
	var stats Stats
	refs := markdown.FindImages(body)
	if len(refs) == 0 {
		return body, stats, nil
	}

	copied := make(map[string]bool)
	edits := make([]markdown.Edit, 0, len(refs))
	for _, ref := range refs {
		src, ok := resolveLocal(docDir, ref.Path)
		if !ok {
			continue
		}
		if !r.provider.Exists(src) {
			stats.Missing++
			observability.DebugContext(ctx, "Image not found, reference left unchanged",
				logfields.DocID(docID), logfields.Path(src))
			continue
		}

		name := AssetName(docID, src)
		if !copied[name] {
			dst := filepath.Join(r.assetDir, name)
			if err := r.provider.CopyFile(src, dst); err != nil {
				return "", stats, ferrors.WrapError(err, ferrors.CategoryFileSystem, "copy image asset").
					WithContext("doc_id", docID).
					WithContext("source", src).
					WithContext("target", dst).
					Build()
			}
			copied[name] = true
			stats.Copied++
			observability.DebugContext(ctx, "Copied image asset",
				logfields.DocID(docID), logfields.Asset(name))
		}

		edits = append(edits, markdown.Edit{
			Start:       ref.Start,
			End:         ref.End,
			Replacement: markdown.ImageMarkup(ref.Alt, path.Join(r.urlPrefix, name)),
		})
	}

	rewritten, err := markdown.ApplyEdits(body, edits)
	if err != nil {
		return "", stats, ferrors.WrapError(err, ferrors.CategoryInternal, "rewrite image references").
			WithContext("doc_id", docID).
			Build()
	}
	return rewritten, stats, nil
}

// resolveLocal maps a reference target to a path under docDir. Remote URLs,
// absolute paths and empty targets are not relocatable.
func resolveLocal(docDir, target string) (string, bool) {
	if target == "" || strings.HasPrefix(target, "/") || strings.HasPrefix(target, "#") {
		return "", false
	}
	if strings.Contains(target, "://") || strings.HasPrefix(target, "data:") || strings.HasPrefix(target, "mailto:") {
		return "", false
	}
	if filepath.IsAbs(target) {
		return "", false
	}
	return filepath.Join(docDir, filepath.FromSlash(target)), true
}
