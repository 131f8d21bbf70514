package matcher

import (
	"testing"

	"geoquiz-service/internal/domain"
)

func TestNormalizeFoldsCaseAccentsAndSpacing(t *testing.T) {
	want := Normalize("mexico")
	if want != "mexico" {
		t.Fatalf("expected mexico, got %q", want)
	}
	for _, in := range []string{"México", "MEXICO", " mexico "} {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeSubstitutions(t *testing.T) {
	equal := [][2]string{
		{"St. Louis", "Saint Louis"},
		{"Bosnia & Herzegovina", "Bosnia and Herzegovina"},
		{"Côte d’Ivoire", "Cote d'Ivoire"},
	}
	for _, pair := range equal {
		if a, b := Normalize(pair[0]), Normalize(pair[1]); a != b {
			t.Fatalf("Normalize(%q) = %q differs from Normalize(%q) = %q", pair[0], a, pair[1], b)
		}
	}

	exact := map[string]string{
		"St. Louis":          "saint louis",
		"Bosnia&Herzegovina": "bosnia and herzegovina",
		"St Kitts & Nevis":   "saint kitts and nevis",
	}
	for in, want := range exact {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeStripsPunctuationAndCollapsesWhitespace(t *testing.T) {
	cases := map[string]string{
		"Guinea-\tBissau":  "guinea bissau",
		"Washington, D.C.": "washington dc",
		"  New   Delhi!  ": "new delhi",
		"":                 "",
		"  ?!  ":           "",
		"Москва":           "москва",
		"Tōkyō 2020":       "tokyo 2020",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"México",
		"St. Louis",
		"st, louis",
		"s.t x",
		"st\nx",
		"Bosnia & Herzegovina",
		"Côte d’Ivoire",
		"  Ærøskøbing  ",
		"first street",
		"İstanbul",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestApplySubstitutionsOrder(t *testing.T) {
	// "st." must win over "st " so the period does not survive as a separate token.
	cases := map[string]string{
		"st. louis": "saint louis",
		"a&b":       "a and b",
		"d’ivoire":  "d'ivoire",
	}
	for in, want := range cases {
		if got := applySubstitutions(in); got != want {
			t.Fatalf("applySubstitutions(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsCorrect(t *testing.T) {
	q := domain.Question{
		Category:      domain.CategoryCapitals,
		Format:        domain.FormatFreeText,
		Prompt:        "What is the capital of France?",
		CorrectAnswer: "Paris",
		Aliases:       []string{"Lutetia"},
	}

	cases := map[string]bool{
		"paris":    true,
		"  PARIS ": true,
		"lutétia":  true,
		"Rome":     false,
		"":         false,
		"   ":      false,
		"Pari":     false,
	}
	for in, want := range cases {
		if got := IsCorrect(in, q); got != want {
			t.Fatalf("IsCorrect(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsCorrectMatchesAliasOnly(t *testing.T) {
	q := domain.Question{
		Category:      domain.CategoryCapitals,
		Format:        domain.FormatFreeText,
		Prompt:        "What is the capital of France?",
		CorrectAnswer: "Paris, France",
		Aliases:       []string{"Paris"},
	}
	if !IsCorrect("paris", q) {
		t.Fatalf("expected alias match")
	}
}

func TestIsMCQCorrectIgnoresAliases(t *testing.T) {
	q := domain.Question{
		Category:      domain.CategoryCurrencies,
		Format:        domain.FormatMCQ,
		Prompt:        "What currency is used in Japan?",
		Options:       []string{"Yen", "Won", "Yuan", "Baht"},
		CorrectAnswer: "Yen",
		Aliases:       []string{"JPY"},
	}

	cases := map[string]bool{
		"Yen":  true,
		"yen ": true,
		"JPY":  false,
		"Won":  false,
		"":     false,
	}
	for in, want := range cases {
		if got := IsMCQCorrect(in, q); got != want {
			t.Fatalf("IsMCQCorrect(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestEvaluateDispatchesOnFormat(t *testing.T) {
	q := domain.Question{
		Category:      domain.CategoryCurrencies,
		Format:        domain.FormatMCQ,
		Prompt:        "What currency is used in Japan?",
		CorrectAnswer: "Yen",
		Aliases:       []string{"JPY"},
	}
	if Evaluate("JPY", q) {
		t.Fatalf("mcq must ignore aliases")
	}

	q.Format = domain.FormatFreeText
	if !Evaluate("JPY", q) {
		t.Fatalf("free text must accept aliases")
	}
}
