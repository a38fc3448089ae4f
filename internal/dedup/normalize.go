package dedup

import (
	"strings"
	"unicode"
)

// Normalize lowercases a headline title and strips everything that is not a
// letter, digit or whitespace, then collapses whitespace runs to single
// spaces. Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(title string) string {
	if title == "" {
		return ""
	}

	lower := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
