package domain

import (
	"fmt"
	"time"
)

// Category identifies the topic domain of a quiz.
type Category string

const (
	CategoryCapitals   Category = "capitals"
	CategoryFlags      Category = "flags"
	CategoryLanguages  Category = "languages"
	CategoryCurrencies Category = "currencies"
)

var categoryTitles = map[Category]string{
	CategoryCapitals:   "Capital Cities",
	CategoryFlags:      "Flags",
	CategoryLanguages:  "Languages",
	CategoryCurrencies: "Currencies",
}

// Categories lists every supported category in display order.
func Categories() []Category {
	return []Category{CategoryCapitals, CategoryFlags, CategoryLanguages, CategoryCurrencies}
}

// ParseCategory maps a raw tag onto a known category.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if _, ok := categoryTitles[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return c, nil
}

// Valid reports whether c is one of the closed set of categories.
func (c Category) Valid() bool {
	_, ok := categoryTitles[c]
	return ok
}

// Title is the human readable heading shown when a quiz starts.
func (c Category) Title() string {
	if title, ok := categoryTitles[c]; ok {
		return title
	}
	return string(c)
}

// AnswerFormat tells whether a question is answered by picking an option or by typing.
type AnswerFormat string

const (
	FormatMCQ      AnswerFormat = "mcq"
	FormatFreeText AnswerFormat = "free_text"
)

// ParseAnswerFormat maps a raw tag onto a known answer format.
func ParseAnswerFormat(raw string) (AnswerFormat, error) {
	f := AnswerFormat(raw)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAnswerFormat, raw)
	}
	return f, nil
}

func (f AnswerFormat) Valid() bool {
	return f == FormatMCQ || f == FormatFreeText
}

// Question is an immutable trivia item. Options is empty for free-text questions.
type Question struct {
	Category      Category     `json:"category" yaml:"category"`
	Format        AnswerFormat `json:"format" yaml:"format"`
	Prompt        string       `json:"prompt" yaml:"prompt"`
	Options       []string     `json:"options" yaml:"options"`
	CorrectAnswer string       `json:"correctAnswer" yaml:"correct_answer"`
	Aliases       []string     `json:"aliases" yaml:"aliases"`
	Explanation   string       `json:"explanation,omitempty" yaml:"explanation"`
	MediaRef      string       `json:"mediaRef,omitempty" yaml:"media_ref"`
}

// Validate checks the fields every question must carry.
func (q Question) Validate() error {
	switch {
	case !q.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalidQuestion, q.Category)
	case !q.Format.Valid():
		return fmt.Errorf("%w: unknown answer format %q", ErrInvalidQuestion, q.Format)
	case q.Prompt == "":
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	case q.CorrectAnswer == "":
		return fmt.Errorf("%w: empty correct answer for %q", ErrInvalidQuestion, q.Prompt)
	}
	return nil
}

// WithDefaults returns q with nil option and alias slices replaced by empty ones.
func (q Question) WithDefaults() Question {
	if q.Options == nil {
		q.Options = []string{}
	}
	if q.Aliases == nil {
		q.Aliases = []string{}
	}
	return q
}

// HistoryEntry summarizes one completed attempt. Entries are append-only.
type HistoryEntry struct {
	Category        Category     `json:"category"`
	Format          AnswerFormat `json:"format"`
	QuestionCount   int          `json:"questionCount"`
	Score           int          `json:"score"`
	DurationSeconds int64        `json:"durationSeconds"`
	HighestStreak   int          `json:"highestStreak"`
	CompletedAt     time.Time    `json:"completedAt"`
}

// StartEvent is emitted once per started quiz and carries its first question.
type StartEvent struct {
	Title    string   `json:"title"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	MediaRef string   `json:"mediaRef,omitempty"`
	Index    int      `json:"index"`
	Total    int      `json:"total"`
}

// QuestionEvent presents a question after the first one.
type QuestionEvent struct {
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	MediaRef string   `json:"mediaRef,omitempty"`
	Index    int      `json:"index"`
	Total    int      `json:"total"`
}

// FeedbackEvent reports the outcome of an answer or a time-out.
type FeedbackEvent struct {
	Message       string `json:"message"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	Score         int    `json:"score"`
	CurrentStreak int    `json:"currentStreak"`
	HighestStreak int    `json:"highestStreak"`
}

// EndEvent closes a quiz.
type EndEvent struct {
	Score           int   `json:"score"`
	Total           int   `json:"total"`
	DurationSeconds int64 `json:"durationSeconds"`
	HighestStreak   int   `json:"highestStreak"`
}
