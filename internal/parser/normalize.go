package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns an uppercase, accent-free copy of s for keyword
// matching. Values and display text must come from the original line.
//
// Decomposing to NFD and dropping non-spacing marks turns Á, Ã, Ç, Ô and
// friends (either case) into their base letter.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.ToUpper(result)
}

// containsAny reports whether normalized text contains any of the needles.
func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if needle != "" && strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
