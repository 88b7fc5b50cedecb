// Package navigation computes next/previous links between documents.
package navigation

import (
	"slices"

	"git.home.luguber.info/inful/blogindex/internal/docmodel"
)

// Resolve orders docs newest first and assigns navigation links in place.
//
// Next points at the chronologically older neighbour, Prev at the newer one.
// A document links to its neighbour inside its own category when one exists
// in that direction; otherwise it falls back to the neighbour in the global
// order. Equal CreatedAt values keep their input order.
//
// The returned slice is a new slice in the resolved order; docs itself is
// not reordered.
func Resolve(docs []*docmodel.Document) []*docmodel.Document {
	ordered := slices.Clone(docs)
	slices.SortStableFunc(ordered, func(a, b *docmodel.Document) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	byCategory := make(map[string][]*docmodel.Document)
	catIndex := make([]int, len(ordered))
	for i, doc := range ordered {
		catIndex[i] = len(byCategory[doc.Category])
		byCategory[doc.Category] = append(byCategory[doc.Category], doc)
	}

	for i, doc := range ordered {
		siblings := byCategory[doc.Category]
		ci := catIndex[i]

		doc.NextPost = nil
		switch {
		case ci+1 < len(siblings):
			doc.NextPost = siblings[ci+1].Link()
		case i+1 < len(ordered):
			doc.NextPost = ordered[i+1].Link()
		}

		doc.PrevPost = nil
		switch {
		case ci > 0:
			doc.PrevPost = siblings[ci-1].Link()
		case i > 0:
			doc.PrevPost = ordered[i-1].Link()
		}
	}
	return ordered
}
