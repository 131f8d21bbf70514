// Package matcher decides whether a typed or selected answer matches a question's accepted answers.
package matcher

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type substitution struct {
	pattern     string
	replacement string
}

// substitutions run in order, before punctuation is stripped.
var substitutions = []substitution{
	{pattern: "st.", replacement: "saint"},
	{pattern: "st ", replacement: "saint "},
	{pattern: "&", replacement: " and "},
	{pattern: "’", replacement: "'"},
}

// Normalize folds text into the comparison form used for answer matching:
// accents removed, lower case, common variants expanded, punctuation dropped
// and whitespace collapsed.
func Normalize(text string) string {
	out := normalizeOnce(text)
	// Stripping punctuation can expose a fresh "st " (for example "st, louis"),
	// so a second pass is needed to reach a fixed point.
	if again := normalizeOnce(out); again != out {
		return again
	}
	return out
}

func normalizeOnce(text string) string {
	if text == "" {
		return ""
	}
	s := strings.TrimSpace(text)
	s = stripMarks(s)
	s = cases.Lower(language.Und).String(s)
	s = applySubstitutions(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// stripMarks decomposes s (NFD) and drops every combining mark.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.M)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func applySubstitutions(s string) string {
	for _, sub := range substitutions {
		s = strings.ReplaceAll(s, sub.pattern, sub.replacement)
	}
	return s
}
