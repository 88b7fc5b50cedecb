package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogindex/internal/frontmatter"
	"git.home.luguber.info/inful/blogindex/internal/storage"
)

type listingProvider struct {
	storage.Provider
	names []string
}

func (p listingProvider) ListEntries(string) ([]string, error) { return p.names, nil }

func TestEnsureSamples_ListsThroughProvider(t *testing.T) {
	dir := t.TempDir()
	provider := listingProvider{Provider: storage.NewOSProvider(), names: []string{"elsewhere.md"}}

	created, err := EnsureSamples(provider, dir)
	require.NoError(t, err)
	assert.False(t, created)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEnsureSamples_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "posts")

	created, err := EnsureSamples(storage.NewOSProvider(), dir)
	require.NoError(t, err)
	assert.True(t, created)

	files, err := storage.NewOSProvider().ListFiles(dir, ".md")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "python_demo.md"), filepath.Join(dir, "welcome.md")}, files)
}

func TestEnsureSamples_LeavesNonEmptyDirAlone(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mine.md"), []byte("# Mine"), 0o644))

	created, err := EnsureSamples(storage.NewOSProvider(), dir)
	require.NoError(t, err)
	assert.False(t, created)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEnsureSamples_Deterministic(t *testing.T) {
	a := filepath.Join(t.TempDir(), "posts")
	b := filepath.Join(t.TempDir(), "posts")
	_, err := EnsureSamples(storage.NewOSProvider(), a)
	require.NoError(t, err)
	_, err = EnsureSamples(storage.NewOSProvider(), b)
	require.NoError(t, err)

	for _, name := range SampleNames() {
		da, err := os.ReadFile(filepath.Join(a, name))
		require.NoError(t, err)
		db, err := os.ReadFile(filepath.Join(b, name))
		require.NoError(t, err)
		assert.Equal(t, da, db)
	}
}

func TestSamplesCarryMetadata(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "posts")
	_, err := EnsureSamples(storage.NewOSProvider(), dir)
	require.NoError(t, err)

	welcome, err := os.ReadFile(filepath.Join(dir, "welcome.md"))
	require.NoError(t, err)
	meta := frontmatter.ExtractText(string(welcome), "welcome")
	assert.Equal(t, "Welcome to Zenith Blog", meta.Title)
	assert.Equal(t, "General", meta.Category)
	assert.Equal(t, []string{"Welcome", "Guide"}, meta.Tags)

	demo, err := os.ReadFile(filepath.Join(dir, "python_demo.md"))
	require.NoError(t, err)
	meta = frontmatter.ExtractText(string(demo), "python_demo")
	assert.Equal(t, "Python Code Example", meta.Title)
	assert.Equal(t, "Tech", meta.Category)
	assert.Equal(t, []string{"Python", "Code"}, meta.Tags)
}
