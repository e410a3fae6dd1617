package validation

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// NormalizeAnswer normalizes an answer for comparison
func NormalizeAnswer(answer string) string {
	answer = strings.ToLower(strings.TrimSpace(answer))

	// Remove leading articles
	for _, prefix := range []string{"the ", "a ", "an "} {
		answer = strings.TrimPrefix(answer, prefix)
	}

	// Remove punctuation
	var result strings.Builder
	for _, r := range answer {
		if !unicode.IsPunct(r) {
			result.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(result.String()), " ")
}

// IsSimilarAnswer reports whether a submitted answer matches the expected one
// closely enough to count as correct.
func IsSimilarAnswer(submitted, expected string) bool {
	a := NormalizeAnswer(submitted)
	b := NormalizeAnswer(expected)

	if a == "" || b == "" {
		return a == b
	}
	if a == b {
		return true
	}

	// Allow typos within 20% of the longer answer
	distance := levenshtein.ComputeDistance(a, b)
	longest := max(len([]rune(a)), len([]rune(b)))
	return float64(distance)/float64(longest) < 0.2
}
