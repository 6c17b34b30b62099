package textutil

import "strings"

// LineJoiner replaces newlines when a block is shown on one line.
const LineJoiner = " / "

// Flatten renders multi-line text on a single line.
func Flatten(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\n", LineJoiner)
}

// FirstLine returns text up to its first newline.
func FirstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return strings.TrimRight(text[:idx], "\r")
	}
	return text
}

// Truncate keeps at most limit runes of text. A non-positive limit keeps
// everything.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}

// DistinctRunes counts the different runes in s.
func DistinctRunes(s string) int {
	seen := make(map[rune]struct{}, len(s))
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}
