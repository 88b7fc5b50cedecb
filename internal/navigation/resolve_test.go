package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogindex/internal/docmodel"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func doc(id, category string, ageDays int) *docmodel.Document {
	return &docmodel.Document{
		ID:        id,
		Title:     "T-" + id,
		Category:  category,
		CreatedAt: base.AddDate(0, 0, -ageDays),
	}
}

func ids(docs []*docmodel.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func linkID(l *docmodel.NavLink) string {
	if l == nil {
		return ""
	}
	return l.ID
}

func TestResolve_CategoryThenGlobalFallback(t *testing.T) {
	a := doc("A", "X", 0)
	b := doc("B", "X", 1)
	c := doc("C", "Y", 2)

	got := Resolve([]*docmodel.Document{c, a, b})

	require.Equal(t, []string{"A", "B", "C"}, ids(got))

	assert.Equal(t, &docmodel.NavLink{ID: "B", Title: "T-B"}, a.NextPost)
	assert.Equal(t, "C", linkID(b.NextPost))
	assert.Nil(t, c.NextPost)

	assert.Equal(t, "B", linkID(c.PrevPost))
	assert.Equal(t, "A", linkID(b.PrevPost))
	assert.Nil(t, a.PrevPost)
}

func TestResolve_InterleavedCategories(t *testing.T) {
	// Global order: A(X) B(Y) C(X) D(Y) E(X)
	docs := []*docmodel.Document{
		doc("A", "X", 0), doc("B", "Y", 1), doc("C", "X", 2), doc("D", "Y", 3), doc("E", "X", 4),
	}
	got := Resolve(docs)

	next := map[string]string{}
	prev := map[string]string{}
	for _, d := range got {
		next[d.ID] = linkID(d.NextPost)
		prev[d.ID] = linkID(d.PrevPost)
	}

	assert.Equal(t, map[string]string{"A": "C", "B": "D", "C": "E", "D": "E", "E": ""}, next)
	assert.Equal(t, map[string]string{"A": "", "B": "A", "C": "A", "D": "B", "E": "C"}, prev)
}

func TestResolve_StableOnEqualTimestamps(t *testing.T) {
	x := doc("x", "C", 0)
	y := doc("y", "C", 0)
	z := doc("z", "C", 0)

	got := Resolve([]*docmodel.Document{y, x, z})

	assert.Equal(t, []string{"y", "x", "z"}, ids(got))
	assert.Equal(t, "x", linkID(y.NextPost))
	assert.Equal(t, "y", linkID(x.PrevPost))
}

func TestResolve_NoDanglingLinks(t *testing.T) {
	docs := []*docmodel.Document{
		doc("a", "1", 5), doc("b", "2", 3), doc("c", "1", 9), doc("d", "3", 1), doc("e", "2", 7),
	}
	got := Resolve(docs)

	known := map[string]bool{}
	for _, d := range got {
		known[d.ID] = true
	}
	for _, d := range got {
		if d.NextPost != nil {
			assert.True(t, known[d.NextPost.ID])
			assert.NotEqual(t, d.ID, d.NextPost.ID)
		}
		if d.PrevPost != nil {
			assert.True(t, known[d.PrevPost.ID])
			assert.NotEqual(t, d.ID, d.PrevPost.ID)
		}
	}
}

func TestResolve_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, Resolve(nil))

	only := doc("solo", "X", 0)
	got := Resolve([]*docmodel.Document{only})
	require.Len(t, got, 1)
	assert.Nil(t, only.NextPost)
	assert.Nil(t, only.PrevPost)
}

func TestResolve_DoesNotReorderInput(t *testing.T) {
	older := doc("old", "X", 3)
	newer := doc("new", "X", 0)
	in := []*docmodel.Document{older, newer}

	Resolve(in)

	assert.Equal(t, []string{"old", "new"}, ids(in))
}
