// Package render converts rewritten document bodies to HTML.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// ErrRender indicates markdown to HTML conversion failed.
var ErrRender = errors.New("render markdown")

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// Renderer turns markdown into an HTML fragment.
type Renderer interface {
	Render(ctx context.Context, markdown string) (string, error)
}

// GoldmarkRenderer renders GFM with chroma highlighted code blocks. Raw HTML
// in sources is not passed through.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a renderer highlighting code with style.
func NewGoldmarkRenderer(style string) *GoldmarkRenderer {
	if style == "" {
		style = DefaultStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &GoldmarkRenderer{md: md}
}

// Render converts markdown to an HTML fragment.
func (r *GoldmarkRenderer) Render(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.String(), nil
}
