package domain

import "errors"

var (
	// ErrUnknownCategory is returned for a category tag outside the supported set.
	ErrUnknownCategory = errors.New("unknown quiz category")
	// ErrUnknownAnswerFormat is returned for an answer format other than mcq or free_text.
	ErrUnknownAnswerFormat = errors.New("unknown answer format")
	// ErrInvalidQuestionCount indicates a quiz was requested with fewer than one question.
	ErrInvalidQuestionCount = errors.New("question count must be positive")
	// ErrNoQuestions indicates the catalog had nothing for the requested category and format.
	ErrNoQuestions = errors.New("no questions available")
	// ErrInvalidQuestion indicates catalog content is missing a required field.
	ErrInvalidQuestion = errors.New("invalid question")
)
