package dates

import (
	"regexp"
	"strings"
)

var reYear = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// Year returns the four-digit year of a date string. A leading YYYY wins;
// otherwise the first standalone 19xx/20xx token is used. Returns "" when
// neither is present.
func Year(date string) string {
	if len(date) >= 4 && allDigits(date[:4]) {
		return date[:4]
	}
	return reYear.FindString(date)
}

func allDigits(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}
