// Package slug derives filesystem-safe identifiers from human-readable names.
package slug

import "strings"

// Slugify lowercases name, collapses every run of characters outside [a-z0-9]
// into a single hyphen, and trims leading and trailing hyphens.
//
// The result may be empty (for example when name has no ASCII letters or
// digits). Distinct names can produce the same slug.
func Slugify(name string) string {
	lower := strings.ToLower(name)

	var sb strings.Builder
	sb.Grow(len(lower))
	pendingHyphen := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return sb.String()
}

// IsSlug reports whether s is already in slug form and non-empty.
func IsSlug(s string) bool {
	return s != "" && Slugify(s) == s
}
