// Package slug derives URL-safe identifiers from dish names.
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
	whitespace = regexp.MustCompile(`\s+`)
	nonWord    = regexp.MustCompile(`[^\w-]+`)
	dashes     = regexp.MustCompile(`-{2,}`)
)

// Make lowercases s, strips accents and joins words with dashes.
// "Pão de Queijo " becomes "pao-de-queijo".
func Make(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	out := strings.ToLower(strings.TrimSpace(folded))
	out = whitespace.ReplaceAllString(out, "-")
	out = nonWord.ReplaceAllString(out, "")
	out = dashes.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
