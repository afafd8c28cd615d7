package util

import (
	"strings"
	"unicode"
)

// Slugify lowercases the title and collapses every run of
// non-alphanumeric characters into a single hyphen. Returns "" when the
// title has no usable characters, so callers can fall back to a
// generated name.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
