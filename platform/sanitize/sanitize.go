// Package sanitize strips markup from operator and collaborator supplied text
// before it is stored.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)

	entityReplacer = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
)

// StripHTML removes tags, decodes the common entities and strips again so an
// encoded tag cannot survive.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = entityReplacer.Replace(result)
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text cleans multi-line text such as notes. Line breaks are kept.
func Text(s string) string {
	return StripHTML(s)
}

// Line cleans a single-line field such as a name or address and collapses runs
// of whitespace.
func Line(s string) string {
	return whitespaceRegex.ReplaceAllString(StripHTML(s), " ")
}

// LinePtr is Line for optional fields.
func LinePtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Line(*s)
	return &result
}
