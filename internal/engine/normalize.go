package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// currencyRunes are preserved by Normalize so currency signals survive into
// keyword and structured-token matching.
var currencyRunes = map[rune]struct{}{
	'₹': {},
	'$': {},
	'€': {},
	'£': {},
}

// Normalize canonicalizes raw text for substring and regex matching: NFKC
// composition, lower-casing, replacement of every rune that is not a word
// character, whitespace, or an allowed currency symbol with a space, then
// whitespace collapsing. Pure and idempotent; empty input normalizes to "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(norm.NFKC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		default:
			if _, ok := currencyRunes[r]; ok {
				b.WriteRune(r)
			} else {
				b.WriteByte(' ')
			}
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// normalizeLight lower-cases and collapses whitespace without stripping
// punctuation. The usability gate and the weak-signal resolver match date,
// time, and "label: value" patterns that full normalization would destroy.
func normalizeLight(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(norm.NFKC.String(s))), " ")
}

// normalizeFilename lower-cases and trims a filename without stripping
// punctuation, so extension checks like ".txt" still work.
func normalizeFilename(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// containsAny reports whether any keyword occurs as a substring of t.
func containsAny(t string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

// countDistinct returns how many of the keywords occur in t.
func countDistinct(t string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(t, k) {
			n++
		}
	}
	return n
}
