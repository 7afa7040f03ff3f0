package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// quoteChars are stripped from both ends of user-typed names and roster lines.
const quoteChars = "\"'“”‘’«»"

var apostropheReplacer = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// StripDiacritics removes combining marks after compatibility decomposition.
func StripDiacritics(value string) string {
	if value == "" {
		return ""
	}
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return out
}

// Fold returns the lower-cased, diacritic-free, trimmed form of value.
// Typographic apostrophes are mapped to ASCII so O’Neil and O'Neil agree.
func Fold(value string) string {
	value = apostropheReplacer.Replace(value)
	return strings.TrimSpace(strings.ToLower(StripDiacritics(value)))
}

// CollapseSpace trims value and replaces every whitespace run with one space.
func CollapseSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// StripQuotes removes surrounding whitespace and quote characters.
func StripQuotes(value string) string {
	return strings.Trim(strings.TrimSpace(value), quoteChars+" \t")
}

// NormalizeKey produces the lookup form of a typed name: quotes stripped,
// folded, and whitespace-collapsed.
func NormalizeKey(value string) string {
	return CollapseSpace(Fold(StripQuotes(value)))
}

// FirstRune returns the first rune of value as a string, or "" when empty.
func FirstRune(value string) string {
	for _, r := range value {
		return string(r)
	}
	return ""
}
