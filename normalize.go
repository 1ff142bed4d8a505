package zoneamento

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases text and strips diacritical marks (decomposing
// accented characters and dropping the combining marks) so that layer name
// matching is accent- and case-insensitive. Empty input yields an empty
// string, never an error.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, strings.ToLower(text))
	if err != nil {
		return strings.ToLower(text)
	}
	return stripped
}
