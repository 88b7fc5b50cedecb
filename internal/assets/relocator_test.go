package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogindex/internal/storage"
)

func setupDoc(t *testing.T) (srcDir, assetDir string) {
	t.Helper()
	root := t.TempDir()
	srcDir = filepath.Join(root, "posts")
	assetDir = filepath.Join(root, "public", "images")
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "welcome"), 0o755))
	require.NoError(t, os.MkdirAll(assetDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "welcome", "cover.png"), []byte("png-bytes"), 0o644))
	return srcDir, assetDir
}

func TestRelocate_RewritesExistingImage(t *testing.T) {
	srcDir, assetDir := setupDoc(t)
	r := NewRelocator(storage.NewOSProvider(), assetDir, "/images")

	body := "intro\n![Cover](welcome/cover.png)\noutro"
	got, stats, err := r.Relocate(context.Background(), "welcome", srcDir, body)
	require.NoError(t, err)

	assert.Equal(t, "intro\n![Cover](/images/welcome_cover.png)\noutro", got)
	assert.Equal(t, Stats{Copied: 1}, stats)

	data, err := os.ReadFile(filepath.Join(assetDir, "welcome_cover.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestRelocate_MissingImageUnchanged(t *testing.T) {
	srcDir, assetDir := setupDoc(t)
	r := NewRelocator(storage.NewOSProvider(), assetDir, "/images")

	body := "![gone](welcome/missing.png) and ![](  ) and ![dir](welcome)"
	got, stats, err := r.Relocate(context.Background(), "welcome", srcDir, body)
	require.NoError(t, err)

	assert.Equal(t, body, got)
	assert.Equal(t, 0, stats.Copied)
	assert.Equal(t, 3, stats.Missing)

	entries, err := os.ReadDir(assetDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRelocate_NonLocalTargetsUnchanged(t *testing.T) {
	srcDir, assetDir := setupDoc(t)
	r := NewRelocator(storage.NewOSProvider(), assetDir, "/images")

	body := "![a](https://example.com/x.png) ![b](/images/welcome_cover.png) ![c]() ![d](data:image/png;base64,AA==)"
	got, stats, err := r.Relocate(context.Background(), "welcome", srcDir, body)
	require.NoError(t, err)

	assert.Equal(t, body, got)
	assert.Equal(t, Stats{}, stats)
}

func TestRelocate_Idempotent(t *testing.T) {
	srcDir, assetDir := setupDoc(t)
	r := NewRelocator(storage.NewOSProvider(), assetDir, "/images")
	body := "![one](welcome/cover.png)\n![two](./welcome/cover.png)"

	first, _, err := r.Relocate(context.Background(), "welcome", srcDir, body)
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(filepath.Join(assetDir, "welcome_cover.png"))
	require.NoError(t, err)

	second, stats, err := r.Relocate(context.Background(), "welcome", srcDir, body)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(filepath.Join(assetDir, "welcome_cover.png"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstBytes, secondBytes)
	assert.Equal(t, "![one](/images/welcome_cover.png)\n![two](/images/welcome_cover.png)", second)
	// Both references share one copy.
	assert.Equal(t, 1, stats.Copied)
}

func TestRelocate_PrefixesAvoidCollisions(t *testing.T) {
	srcDir, assetDir := setupDoc(t)
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "other"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "other", "cover.png"), []byte("other-bytes"), 0o644))
	r := NewRelocator(storage.NewOSProvider(), assetDir, "/images")

	_, _, err := r.Relocate(context.Background(), "welcome", srcDir, "![](welcome/cover.png)")
	require.NoError(t, err)
	got, _, err := r.Relocate(context.Background(), "other", srcDir, "![](other/cover.png)")
	require.NoError(t, err)

	assert.Equal(t, "![](/images/other_cover.png)", got)
	a, _ := os.ReadFile(filepath.Join(assetDir, "welcome_cover.png"))
	b, _ := os.ReadFile(filepath.Join(assetDir, "other_cover.png"))
	assert.Equal(t, "png-bytes", string(a))
	assert.Equal(t, "other-bytes", string(b))
}

func TestRelocate_CopyFailureIsFatal(t *testing.T) {
	srcDir, _ := setupDoc(t)
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	r := NewRelocator(storage.NewOSProvider(), blocker, "/images")

	_, _, err := r.Relocate(context.Background(), "welcome", srcDir, "![](welcome/cover.png)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copy image asset")
}

func TestStatsAdd(t *testing.T) {
	s := Stats{Copied: 1, Missing: 2}
	s.Add(Stats{Copied: 3, Missing: 4})
	assert.Equal(t, Stats{Copied: 4, Missing: 6}, s)
}
