package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract_SamplePost(t *testing.T) {
	text := "# Welcome to Zenith Blog\n@General #Welcome #Guide\nThis is your first generated blog post.\n"
	md := ExtractText(text, "welcome")

	require.Equal(t, "Welcome to Zenith Blog", md.Title)
	require.Equal(t, "General", md.Category)
	require.Equal(t, []string{"Welcome", "Guide"}, md.Tags)
}

func TestExtract_TagsDeduplicatedFirstSeenOrder(t *testing.T) {
	text := "#go #rust\n#go #zig #rust\n#python"
	md := ExtractText(text, "doc")
	require.Equal(t, []string{"go", "rust", "zig", "python"}, md.Tags)
}

func TestExtract_FullWidthMarkersAndCJK(t *testing.T) {
	text := "＠技术 ＃编程 #Go语言\n正文"
	md := ExtractText(text, "doc")
	require.Equal(t, "技术", md.Category)
	require.Equal(t, []string{"编程", "Go语言"}, md.Tags)
}

func TestExtract_FirstCategoryWins(t *testing.T) {
	text := "intro\n@First and @Second\n@Third"
	md := ExtractText(text, "doc")
	require.Equal(t, "First", md.Category)
}

func TestExtract_MarkersOutsideWindowIgnored(t *testing.T) {
	text := "line1\nline2\nline3\nline4\nline5\n@Late #late\n"
	md := ExtractText(text, "doc")
	require.Equal(t, DefaultCategory, md.Category)
	require.Empty(t, md.Tags)
}

func TestExtract_WindowLimitAppliedToLines(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e", "#sixth @Sixth"}
	md := Extract(lines, "", "doc")
	require.Empty(t, md.Tags)
	require.Equal(t, DefaultCategory, md.Category)
}

func TestExtract_HashWithoutWordIsNotATag(t *testing.T) {
	text := "# Heading\n## Sub\n# \n#-dash\n@ spaced"
	md := ExtractText(text, "doc")
	require.Empty(t, md.Tags)
	require.Equal(t, DefaultCategory, md.Category)
}

func TestExtract_AdjacentMarkers(t *testing.T) {
	md := ExtractText("##double #a#b", "doc")
	require.Equal(t, []string{"double", "a", "b"}, md.Tags)
}

func TestExtract_TitleFallbacks(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"level one anywhere beats earlier level two", "## Second\nbody\n# First\n", "First"},
		{"level two when no level one", "text\n## Only Sub\n", "Only Sub"},
		{"stem when no headings", "just text\n#tag", "my-post"},
		{"trimmed", "#    Spaced Out   \n", "Spaced Out"},
		{"empty document", "", "my-post"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ExtractText(tc.text, "my-post").Title)
		})
	}
}

func TestExtract_NoMetadataUsesDefaults(t *testing.T) {
	md := ExtractText("plain body only", "plain")
	require.Equal(t, "plain", md.Title)
	require.Equal(t, DefaultCategory, md.Category)
	require.NotNil(t, md.Tags)
	require.Empty(t, md.Tags)
}
