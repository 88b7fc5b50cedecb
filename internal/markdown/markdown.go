// Package markdown holds the whole-document scanning rules of the index
// pipeline: heading lookup for titles and inline image references.
//
// These scanners work on raw text line by line and never build an AST, so a
// malformed document degrades to "no match" instead of an error.
package markdown

import "strings"

// Lines splits text on '\n'. A trailing '\r' stays on its line; callers that
// care trim it.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// HeaderWindow returns at most n leading lines of text.
func HeaderWindow(text string, n int) []string {
	lines := Lines(text)
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
