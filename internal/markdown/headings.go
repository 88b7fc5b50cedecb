package markdown

import "strings"

// HeadingText returns the trimmed text of line when it is an ATX heading of
// exactly the given level: level '#' characters at column 0, at least one
// space or tab, then non-blank text. "### x" is not a level-2 heading.
func HeadingText(line string, level int) (string, bool) {
	if level < 1 || len(line) <= level {
		return "", false
	}
	if strings.Count(line[:level], "#") != level {
		return "", false
	}
	rest := line[level:]
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	text := strings.TrimSpace(rest)
	if text == "" {
		return "", false
	}
	return text, true
}

// FirstHeading returns the text of the first heading of level in text.
func FirstHeading(text string, level int) (string, bool) {
	for _, line := range Lines(text) {
		if t, ok := HeadingText(line, level); ok {
			return t, true
		}
	}
	return "", false
}

// Title finds the document title: the first level-1 heading anywhere in the
// text, else the first level-2 heading. ok is false when neither exists.
func Title(text string) (string, bool) {
	if t, ok := FirstHeading(text, 1); ok {
		return t, true
	}
	return FirstHeading(text, 2)
}
