// Package slug derives the identity string of a record. The identity names
// downloaded thumbnails and drives duplicate detection.
package slug

import (
	"strings"

	"gopkg.in/yaml.v3"

	"bibyaml/src/internal/dates"
	"bibyaml/src/internal/names"
	"bibyaml/src/internal/sanitize"
	"bibyaml/src/internal/yamlnode"
)

// Deriver proposes a slug for a record, or "" when it has nothing to offer.
type Deriver func(rec *yaml.Node) string

// Chain is tried in order; the first non-empty result wins.
var Chain = []Deriver{Explicit, PDFButton, AuthorYear}

// For returns the slug of rec, or "" when no deriver produces one.
func For(rec *yaml.Node) string {
	for _, d := range Chain {
		if s := d(rec); s != "" {
			return s
		}
	}
	return ""
}

// Explicit returns the record's own trimmed "slug" string.
func Explicit(rec *yaml.Node) string {
	s, _ := yamlnode.Str(yamlnode.Lookup(rec, "slug"))
	return strings.TrimSpace(s)
}

// PDFButton returns the file name, without extension, of the first button of
// type "pdf" that carries a link.
func PDFButton(rec *yaml.Node) string {
	for _, btn := range yamlnode.Items(yamlnode.Lookup(rec, "buttons")) {
		typ, ok := yamlnode.Str(yamlnode.Lookup(btn, "type"))
		if !ok || !strings.EqualFold(typ, "pdf") {
			continue
		}
		link, _ := yamlnode.Str(yamlnode.Lookup(btn, "link"))
		if link = strings.TrimSpace(link); link == "" {
			continue
		}
		return sanitize.StripExt(sanitize.Basename(link))
	}
	return ""
}

// AuthorYear returns "{surname}_{year}" from the first author and the date.
// Both parts are required.
func AuthorYear(rec *yaml.Node) string {
	last := names.Token(firstAuthorSurname(rec))
	if last == "" {
		return ""
	}
	date, _ := yamlnode.Scalar(yamlnode.Lookup(rec, "date"))
	year := dates.Year(date)
	if year == "" {
		return ""
	}
	return last + "_" + year
}

func firstAuthorSurname(rec *yaml.Node) string {
	authors := yamlnode.Items(yamlnode.Lookup(rec, "authors"))
	if len(authors) == 0 {
		return ""
	}
	first := authors[0]
	if s, ok := yamlnode.Str(first); ok {
		return names.Surname(s)
	}
	// structured authors: {family: Doe, given: Jane}
	for _, k := range []string{"family", "last"} {
		if s, ok := yamlnode.Str(yamlnode.Lookup(first, k)); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
