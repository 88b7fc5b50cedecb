package docmodel

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/blogindex/internal/assets"
	ferrors "git.home.luguber.info/inful/blogindex/internal/foundation/errors"
	"git.home.luguber.info/inful/blogindex/internal/frontmatter"
	"git.home.luguber.info/inful/blogindex/internal/logfields"
	"git.home.luguber.info/inful/blogindex/internal/observability"
	"git.home.luguber.info/inful/blogindex/internal/storage"
)

// ErrRead marks a source document that could not be read or stat'ed.
var ErrRead = errors.New("read source document")

// Parser turns source files into Documents.
type Parser struct {
	provider  storage.Provider
	relocator *assets.Relocator
}

// NewParser creates a parser reading through provider and relocating images
// with relocator.
func NewParser(provider storage.Provider, relocator *assets.Relocator) *Parser {
	return &Parser{provider: provider, relocator: relocator}
}

// ID derives the document identifier from a source path: the file name
// without its final extension.
func ID(path string) string {
	base := filepath.Base(path)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	// A dotfile such as ".md" has no stem; the whole name is the id.
	return base
}

// Parse reads path and builds its Document. Navigation links are left nil.
// Read failures are returned wrapped so errors.Is sees both ErrRead and the
// underlying fs error.
func (p *Parser) Parse(ctx context.Context, path string) (*Document, assets.Stats, error) {
	id := ID(path)

	text, err := p.provider.ReadText(path)
	if err != nil {
		return nil, assets.Stats{}, readError(err, path)
	}
	times, err := p.provider.Stat(path)
	if err != nil {
		return nil, assets.Stats{}, readError(err, path)
	}

	meta := frontmatter.ExtractText(text, id)

	content, stats, err := p.relocator.Relocate(ctx, id, filepath.Dir(path), text)
	if err != nil {
		return nil, stats, err
	}

	observability.DebugContext(ctx, "Parsed document",
		logfields.DocID(id),
		logfields.Category(meta.Category),
		logfields.Count(len(meta.Tags)))

	return &Document{
		ID:        id,
		Title:     meta.Title,
		Category:  meta.Category,
		Tags:      meta.Tags,
		Content:   content,
		CreatedAt: times.CreatedAt.UTC(),
		UpdatedAt: times.ModifiedAt.UTC(),
		Slug:      id,
	}, stats, nil
}

func readError(err error, path string) error {
	return ferrors.WrapError(fmt.Errorf("%w: %w", ErrRead, err), ferrors.CategoryFileSystem, "read source document").
		WithContext("path", path).
		Build()
}
