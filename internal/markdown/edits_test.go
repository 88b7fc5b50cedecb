package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyEdits_NoEditsReturnsSource(t *testing.T) {
	out, err := ApplyEdits("unchanged", nil)
	require.NoError(t, err)
	require.Equal(t, "unchanged", out)
}

func TestApplyEdits_MultipleReplacementsOutOfOrder(t *testing.T) {
	src := "a ![x](x.png) b ![y](y.png) c"
	refs := FindImages(src)
	require.Len(t, refs, 2)

	out, err := ApplyEdits(src, []Edit{
		{Start: refs[1].Start, End: refs[1].End, Replacement: ImageMarkup("y", "/images/y.png")},
		{Start: refs[0].Start, End: refs[0].End, Replacement: ImageMarkup("x", "/images/x.png")},
	})
	require.NoError(t, err)
	require.Equal(t, "a ![x](/images/x.png) b ![y](/images/y.png) c", out)
}

func TestApplyEdits_CRLFInputPreserved(t *testing.T) {
	src := "line one\r\n![a](a.png)\r\nline three\r\n"
	refs := FindImages(src)
	require.Len(t, refs, 1)

	out, err := ApplyEdits(src, []Edit{{Start: refs[0].Start, End: refs[0].End, Replacement: "![a](/images/a.png)"}})
	require.NoError(t, err)
	require.Equal(t, "line one\r\n![a](/images/a.png)\r\nline three\r\n", out)
}

func TestApplyEdits_RejectsOverlappingEdits(t *testing.T) {
	_, err := ApplyEdits("0123456789", []Edit{
		{Start: 1, End: 5, Replacement: "x"},
		{Start: 4, End: 6, Replacement: "y"},
	})
	require.ErrorIs(t, err, ErrOverlappingEdits)
}

func TestApplyEdits_RejectsOutOfBounds(t *testing.T) {
	_, err := ApplyEdits("abc", []Edit{{Start: 2, End: 9}})
	require.Error(t, err)
}
