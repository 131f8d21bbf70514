package app

import (
	"time"

	"github.com/google/uuid"

	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/matcher"
)

// Session is one attempt at a fixed, ordered set of questions.
// It is owned by a single orchestrator and is not safe for concurrent use.
type Session struct {
	id        string
	category  domain.Category
	format    domain.AnswerFormat
	questions []domain.Question
	now       func() time.Time

	position      int
	score         int
	currentStreak int
	highestStreak int
	startedAt     time.Time
	endedAt       time.Time
	finalized     bool
}

// NewSession starts a session on the wall clock. An empty question list yields
// a session that is already finished.
func NewSession(category domain.Category, format domain.AnswerFormat, questions []domain.Question) *Session {
	return NewSessionWithClock(category, format, questions, time.Now)
}

// NewSessionWithClock allows deterministic timestamps in tests.
func NewSessionWithClock(category domain.Category, format domain.AnswerFormat, questions []domain.Question, now func() time.Time) *Session {
	qs := make([]domain.Question, len(questions))
	for i, q := range questions {
		qs[i] = q.WithDefaults()
	}
	return &Session{
		id:        uuid.NewString(),
		category:  category,
		format:    format,
		questions: qs,
		now:       now,
		startedAt: now(),
	}
}

func (s *Session) ID() string { return s.id }
func (s *Session) Total() int { return len(s.questions) }
func (s *Session) Position() int { return s.position }
func (s *Session) Score() int { return s.score }
func (s *Session) CurrentStreak() int { return s.currentStreak }
func (s *Session) HighestStreak() int { return s.highestStreak }

// Finished reports whether every question has been passed.
func (s *Session) Finished() bool {
	return s.position >= len(s.questions)
}

// CurrentQuestion returns the question at the current position, or false once finished.
func (s *Session) CurrentQuestion() (domain.Question, bool) {
	if s.Finished() {
		return domain.Question{}, false
	}
	return s.questions[s.position], true
}

// AnswerCurrent scores input against the current question without moving on.
// It returns false and changes nothing once the session is finished.
func (s *Session) AnswerCurrent(input string) bool {
	q, ok := s.CurrentQuestion()
	if !ok {
		return false
	}
	correct := matcher.Evaluate(input, q)
	s.record(correct)
	return correct
}

// Miss scores the current question as wrong without consulting the matcher.
func (s *Session) Miss() {
	if s.Finished() {
		return
	}
	s.record(false)
}

func (s *Session) record(correct bool) {
	if !correct {
		s.currentStreak = 0
		return
	}
	s.score++
	s.currentStreak++
	if s.currentStreak > s.highestStreak {
		s.highestStreak = s.currentStreak
	}
}

// Advance moves to the next question. It never moves past the end.
func (s *Session) Advance() {
	if s.Finished() {
		return
	}
	s.position++
}

// Finalize stamps the end time. Repeated calls keep the first stamp.
func (s *Session) Finalize() {
	if s.finalized {
		return
	}
	s.endedAt = s.now()
	s.finalized = true
}

// DurationSeconds is the whole seconds between start and finalize; zero before finalize.
func (s *Session) DurationSeconds() int64 {
	if !s.finalized {
		return 0
	}
	d := s.endedAt.Sub(s.startedAt)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

// HistoryEntry summarizes a finalized session.
func (s *Session) HistoryEntry() domain.HistoryEntry {
	return domain.HistoryEntry{
		Category:        s.category,
		Format:          s.format,
		QuestionCount:   len(s.questions),
		Score:           s.score,
		DurationSeconds: s.DurationSeconds(),
		HighestStreak:   s.highestStreak,
		CompletedAt:     s.endedAt,
	}
}
