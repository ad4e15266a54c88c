package utils

import (
	"strings"
	"unicode"
)

// Slugify turns a display name into a URL-safe slug. Letters and digits are
// kept lowercase; every other run of characters collapses into a single dash.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
