package strcase

import (
	"strings"
	"unicode"
)

// Slugify lowercases s and joins runs of letters and digits with single
// hyphens. Everything else is treated as a separator.
func Slugify(parts ...string) string {
	var b strings.Builder
	pendingDash := false

	for _, part := range parts {
		for _, r := range strings.ToLower(part) {
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				if pendingDash && b.Len() > 0 {
					b.WriteByte('-')
				}
				pendingDash = false
				b.WriteRune(r)
				continue
			}
			pendingDash = true
		}
		pendingDash = true
	}

	return b.String()
}
