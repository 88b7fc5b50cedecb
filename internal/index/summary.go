package index

import (
	"sort"
	"time"

	"git.home.luguber.info/inful/blogindex/internal/docmodel"
)

// Count is a label with the number of documents carrying it.
type Count struct {
	Name  string
	Count int
}

// Summary describes an index for reporting.
type Summary struct {
	Total      int
	Categories []Count
	Tags       []Count
	Latest     *docmodel.Document
}

// Summarize counts categories and tags of docs, most frequent first with
// ties broken by name. Latest is the document with the newest CreatedAt.
func Summarize(docs []*docmodel.Document) Summary {
	s := Summary{Total: len(docs)}
	categories := map[string]int{}
	tags := map[string]int{}
	var latest time.Time
	for _, d := range docs {
		categories[d.Category]++
		for _, tag := range d.Tags {
			tags[tag]++
		}
		if s.Latest == nil || d.CreatedAt.After(latest) {
			s.Latest = d
			latest = d.CreatedAt
		}
	}
	s.Categories = sortedCounts(categories)
	s.Tags = sortedCounts(tags)
	return s
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, n := range m {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
