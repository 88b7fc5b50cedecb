package markdown

import (
	"regexp"
)

// imagePattern matches inline images `![alt](path)`. Both groups are
// non-greedy and stop at line ends.
var imagePattern = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)

// ImageRef is one inline image reference found in a document body.
// Start and End are byte offsets of the whole reference, End exclusive.
type ImageRef struct {
	Start int
	End   int
	Alt   string
	Path  string
}

// Raw returns the original reference text from source.
func (r ImageRef) Raw(source string) string { return source[r.Start:r.End] }

// FindImages returns every inline image reference in body, in order.
func FindImages(body string) []ImageRef {
	matches := imagePattern.FindAllStringSubmatchIndex(body, -1)
	refs := make([]ImageRef, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, ImageRef{
			Start: m[0],
			End:   m[1],
			Alt:   body[m[2]:m[3]],
			Path:  body[m[4]:m[5]],
		})
	}
	return refs
}

// ImageMarkup renders an inline image reference.
func ImageMarkup(alt, path string) string {
	return "![" + alt + "](" + path + ")"
}
