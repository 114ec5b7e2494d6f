// Package normalizer cleans text extracted from HTML before tokenization.
package normalizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// CollapseWhitespace replaces every run of Unicode whitespace (including
// U+3000 ideographic space and non-breaking space) with a single ASCII
// space and trims both ends.
func CollapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DecodeEntities decodes HTML character references such as &amp;,
// &#12354; and &nbsp;.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}

// Clean decodes entities and collapses whitespace.
func Clean(s string) string {
	return CollapseWhitespace(DecodeEntities(s))
}

// Length returns the length of s in characters (Unicode code points).
// All text lengths and word lengths used for percentages are measured this way.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate returns at most maxRunes characters of s.
// A non-positive maxRunes returns s unchanged.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}
