package markdown

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Edit is a byte-range replacement over the original source. End is exclusive.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// ErrOverlappingEdits is returned when two edits touch the same bytes.
var ErrOverlappingEdits = errors.New("overlapping edits")

// ApplyEdits applies non-overlapping edits expressed as offsets into source.
// Bytes outside every edit are copied through untouched.
func ApplyEdits(source string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	b.Grow(len(source))
	pos := 0
	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(source) {
			return "", fmt.Errorf("invalid edit[%d]: range [%d,%d) out of bounds", i, e.Start, e.End)
		}
		if e.Start < pos {
			return "", fmt.Errorf("%w: edit[%d] starts at %d before %d", ErrOverlappingEdits, i, e.Start, pos)
		}
		b.WriteString(source[pos:e.Start])
		b.WriteString(e.Replacement)
		pos = e.End
	}
	b.WriteString(source[pos:])
	return b.String(), nil
}
