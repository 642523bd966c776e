// Package match picks the best provider candidate for a local anime title.
package match

import (
	"strings"
	"unicode"

	"aniflux/internal/provider"
)

// Normalize lowercases s and strips everything that is not a letter or a
// digit, so "Jujutsu Kaisen: 2nd Season" and "jujutsu kaisen 2nd season"
// compare equal.
func Normalize(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BestMatch returns the candidate whose normalized title equals the
// normalized query, or the first candidate otherwise (provider order is
// popularity-sorted). ok is false when the list is empty.
//
// No fuzzy edit-distance scoring happens here; for franchises with many
// seasons the first result can bind the wrong entry. Stricter matching is a
// product decision that has not been made yet.
func BestMatch(title string, candidates []provider.SearchResult) (provider.SearchResult, bool) {
	if len(candidates) == 0 {
		return provider.SearchResult{}, false
	}

	target := Normalize(title)
	for _, c := range candidates {
		if Normalize(c.Title) == target {
			return c, true
		}
	}
	return candidates[0], true
}
