package names

import (
	"strings"
)

// Surname returns the family name of an author string. It accepts either
// "Family, Given Names" or "Given Names Family".
func Surname(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if i := strings.Index(name, ","); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	parts := strings.Fields(name)
	return parts[len(parts)-1]
}

// Token keeps only ASCII letters, digits and hyphens so the result is safe to
// embed in a file name. Everything else is dropped, not replaced.
func Token(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
