package matcher

import "geoquiz-service/internal/domain"

// IsCorrect checks a free-text answer against the canonical answer and then each alias.
// Only exact equality after normalization counts; a blank answer never matches.
func IsCorrect(input string, q domain.Question) bool {
	candidate := Normalize(input)
	if candidate == "" {
		return false
	}
	if candidate == Normalize(q.CorrectAnswer) {
		return true
	}
	for _, alias := range q.Aliases {
		if candidate == Normalize(alias) {
			return true
		}
	}
	return false
}

// IsMCQCorrect checks a selected option against the canonical answer. Aliases are ignored.
func IsMCQCorrect(selected string, q domain.Question) bool {
	candidate := Normalize(selected)
	if candidate == "" {
		return false
	}
	return candidate == Normalize(q.CorrectAnswer)
}

// Evaluate picks the matching rule for the question's answer format.
func Evaluate(input string, q domain.Question) bool {
	if q.Format == domain.FormatMCQ {
		return IsMCQCorrect(input, q)
	}
	return IsCorrect(input, q)
}
