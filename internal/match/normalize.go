// Package match decides whether a free-text answer counts as correct.
// It compares a candidate string against a set of accepted answers using
// normalized forms and a small edit-distance tolerance for misspellings.
package match

import "strings"

// punctuation stripped before comparison. Normalized forms are only used
// for matching, never displayed.
const punctuation = ".,/#!$%^&*;:{}=-_`~()"

// Normalize lower-cases s, strips punctuation, collapses whitespace runs
// to a single space and trims the ends. Idempotent: Normalize(Normalize(s))
// equals Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(s)

	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}
