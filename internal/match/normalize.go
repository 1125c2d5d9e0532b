// Package match implements keyword extraction and weighted match scoring
// between resume text and job descriptions.
package match

import "strings"

// Normalize lowercases text, replaces every character outside
// [a-z0-9 +#.] with a space, collapses whitespace runs and trims.
// It is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r == ' ', r == '+', r == '#', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
