// Package slug derives the URL slug stored on a tour from its name. The slug
// is computed once at creation and never recomputed on later updates.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlug     = regexp.MustCompile(`[^a-z0-9-]+`)
	manyHyphens = regexp.MustCompile(`-{2,}`)
)

// Make converts a tour name to its lowercase-hyphenated slug form. Accented
// characters are decomposed to their base letters first.
func Make(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ := transform.String(t, name)

	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlug.ReplaceAllString(s, "")
	s = manyHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
