// Package sanitize filters model output down to the characters the report
// fonts can render: ASCII and precomposed Hangul syllables.
package sanitize

import "strings"

const extraPunctuation = ".,!?()-/:%"

// Allowed reports whether r survives Text unchanged.
func Allowed(r rune) bool {
	switch {
	case r <= 0x7F:
		return true
	case r >= 0xAC00 && r <= 0xD7AF:
		return true
	}
	return strings.ContainsRune(extraPunctuation, r)
}

// Text replaces every rune outside the allowed set with a single space.
func Text(s string) string {
	return strings.Map(func(r rune) rune {
		if Allowed(r) {
			return r
		}
		return ' '
	}, s)
}
