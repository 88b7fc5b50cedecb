// Package frontmatter extracts the inline metadata markers that open a post:
// hash-prefixed tags and an at-prefixed category inside a fixed window of
// leading lines, plus the heading-derived title.
package frontmatter

import (
	"regexp"

	"git.home.luguber.info/inful/blogindex/internal/markdown"
	"git.home.luguber.info/inful/blogindex/internal/util/sets"
)

const (
	// HeaderLines is the number of leading lines scanned for markers.
	// Markers further down are ordinary text.
	HeaderLines = 5

	// DefaultCategory is used when no category marker appears in the window.
	DefaultCategory = "Uncategorized"
)

// wordClass is ASCII letters, digits, underscore and CJK unified ideographs.
const wordClass = `[0-9A-Za-z_\x{4e00}-\x{9fa5}]+`

var (
	// Tag marker: ASCII '#' or full-width '＃' directly followed by a word.
	tagPattern = regexp.MustCompile(`(?:#|＃)(` + wordClass + `)`)
	// Category marker: ASCII '@' or full-width '＠' directly followed by a word.
	categoryPattern = regexp.MustCompile(`(?:@|＠)(` + wordClass + `)`)
)

// Metadata is what a document declares about itself.
type Metadata struct {
	Title    string
	Category string
	Tags     []string
}

// Extract derives metadata from a document. lines is the header window
// (only the first HeaderLines entries are considered), fullText is the whole
// document and stem is the filename stem used when no heading exists.
// It never fails: absent or malformed markers yield the defaults.
func Extract(lines []string, fullText, stem string) Metadata {
	if len(lines) > HeaderLines {
		lines = lines[:HeaderLines]
	}

	tags := sets.NewOrdered[string]()
	category := ""
	for _, line := range lines {
		for _, m := range tagPattern.FindAllStringSubmatch(line, -1) {
			tags.Add(m[1])
		}
		if category == "" {
			if m := categoryPattern.FindStringSubmatch(line); m != nil {
				category = m[1]
			}
		}
	}
	if category == "" {
		category = DefaultCategory
	}

	title, ok := markdown.Title(fullText)
	if !ok {
		title = stem
	}

	return Metadata{
		Title:    title,
		Category: category,
		Tags:     tags.Values(),
	}
}

// ExtractText is Extract with the header window taken from text itself.
func ExtractText(text, stem string) Metadata {
	return Extract(markdown.HeaderWindow(text, HeaderLines), text, stem)
}
