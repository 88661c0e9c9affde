package scoring

import "strings"

// Normalize lowercases and trims an answer for comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TextMatches reports whether a free-text answer counts as correct.
// A submission matches when, after normalization, it equals the expected
// answer, contains it, or is contained in it. The containment rule is a
// product decision carried over as-is: "Lagos" is accepted for the
// expected answer "Lagos State" and vice versa.
func TextMatches(got, want string) bool {
	g, w := Normalize(got), Normalize(want)
	if g == "" || w == "" {
		return false
	}
	return g == w || strings.Contains(g, w) || strings.Contains(w, g)
}
