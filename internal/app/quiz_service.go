package app

import (
	"context"
	"fmt"
	"time"

	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/logging"
)

// Feedback messages shown after an answer or a time-out.
const (
	MessageCorrect   = "Correct!"
	MessageIncorrect = "Incorrect."
	MessageTimeUp    = "Time's up!"
)

// QuestionSource returns up to count questions in presentation order.
type QuestionSource interface {
	Fetch(ctx context.Context, category domain.Category, format domain.AnswerFormat, count int) ([]domain.Question, error)
}

// HistoryStore persists completed attempts (in-memory, Redis, Postgres, SQLite).
type HistoryStore interface {
	Append(ctx context.Context, entry domain.HistoryEntry) error
	ListAll(ctx context.Context) ([]domain.HistoryEntry, error)
}

// Presenter renders quiz events. Each public QuizService call emits at most one of them.
type Presenter interface {
	OnStart(domain.StartEvent)
	OnQuestion(domain.QuestionEvent)
	OnFeedback(domain.FeedbackEvent)
	OnEnd(domain.EndEvent)
	OnHistory([]domain.HistoryEntry)
}

// Observer receives quiz lifecycle signals, typically for metrics.
type Observer interface {
	QuizStarted(category domain.Category, format domain.AnswerFormat)
	AnswerEvaluated(outcome string)
	QuizCompleted(category domain.Category, format domain.AnswerFormat, durationSeconds int64)
}

// Answer outcomes reported to the Observer.
const (
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
	OutcomeTimeout   = "timeout"
)

type nopObserver struct{}

func (nopObserver) QuizStarted(domain.Category, domain.AnswerFormat) {}
func (nopObserver) AnswerEvaluated(string) {}
func (nopObserver) QuizCompleted(domain.Category, domain.AnswerFormat, int64) {}

// Option configures a QuizService.
type Option func(*QuizService)

// WithClock overrides the wall clock used for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) { s.now = now }
}

// WithObserver attaches a lifecycle observer.
func WithObserver(o Observer) Option {
	return func(s *QuizService) {
		if o != nil {
			s.observer = o
		}
	}
}

// QuizService drives one player's quiz: it owns at most one Session and turns
// user actions into presentation events. It is not safe for concurrent use;
// give every player their own QuizService.
type QuizService struct {
	questions QuestionSource
	history   HistoryStore
	presenter Presenter
	observer  Observer
	now       func() time.Time

	session *Session
}

func NewQuizService(questions QuestionSource, history HistoryStore, presenter Presenter, opts ...Option) *QuizService {
	s := &QuizService{
		questions: questions,
		history:   history,
		presenter: presenter,
		observer:  nopObserver{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns the active session, or nil when none is in progress.
func (s *QuizService) Session() *Session {
	return s.session
}

// StartQuiz fetches questions and replaces any previous session. On error the
// previous session is left untouched and nothing is emitted.
func (s *QuizService) StartQuiz(ctx context.Context, category domain.Category, format domain.AnswerFormat, count int) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	if !format.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownAnswerFormat, format)
	}
	if count <= 0 {
		return domain.ErrInvalidQuestionCount
	}

	logger := logging.FromContext(ctx)
	questions, err := s.questions.Fetch(ctx, category, format, count)
	if err != nil {
		logger.Error().Err(err).Str("category", string(category)).Str("format", string(format)).Msg("fetch questions failed")
		return fmt.Errorf("fetch questions: %w", err)
	}
	if len(questions) == 0 {
		return fmt.Errorf("%w for %s/%s", domain.ErrNoQuestions, category, format)
	}
	if len(questions) > count {
		questions = questions[:count]
	}

	session := NewSessionWithClock(category, format, questions, s.now)
	s.session = session
	s.observer.QuizStarted(category, format)
	logger.Info().
		Str("session", session.ID()).
		Str("category", string(category)).
		Str("format", string(format)).
		Int("questions", session.Total()).
		Msg("quiz started")

	first, _ := session.CurrentQuestion()
	s.presenter.OnStart(domain.StartEvent{
		Title:    category.Title(),
		Prompt:   first.Prompt,
		Options:  first.Options,
		MediaRef: first.MediaRef,
		Index:    session.Position(),
		Total:    session.Total(),
	})
	return nil
}

// SubmitAnswer scores input against the current question and emits feedback.
// It does nothing when no quiz is in progress.
func (s *QuizService) SubmitAnswer(_ context.Context, input string) {
	session := s.activeSession()
	if session == nil {
		return
	}
	q, _ := session.CurrentQuestion()
	correct := session.AnswerCurrent(input)

	message, outcome := MessageIncorrect, OutcomeIncorrect
	if correct {
		message, outcome = MessageCorrect, OutcomeCorrect
	}
	s.observer.AnswerEvaluated(outcome)
	s.emitFeedback(session, q, message)
}

// TimeExpired scores the current question as missed and emits a time-out
// feedback. It does nothing when no quiz is in progress.
func (s *QuizService) TimeExpired(_ context.Context) {
	session := s.activeSession()
	if session == nil {
		return
	}
	q, _ := session.CurrentQuestion()
	session.Miss()
	s.observer.AnswerEvaluated(OutcomeTimeout)
	s.emitFeedback(session, q, MessageTimeUp)
}

// NextQuestion advances the session. Past the last question it finalizes,
// records history and emits the end event; otherwise it emits the next question.
// It does nothing when no quiz is in progress. If recording fails the error is
// returned, nothing is emitted, and the finished session stays visible through
// Session until the next StartQuiz.
func (s *QuizService) NextQuestion(ctx context.Context) error {
	session := s.activeSession()
	if session == nil {
		return nil
	}

	session.Advance()
	if !session.Finished() {
		q, _ := session.CurrentQuestion()
		s.presenter.OnQuestion(domain.QuestionEvent{
			Prompt:   q.Prompt,
			Options:  q.Options,
			MediaRef: q.MediaRef,
			Index:    session.Position(),
			Total:    session.Total(),
		})
		return nil
	}

	logger := logging.FromContext(ctx)
	session.Finalize()
	entry := session.HistoryEntry()
	if err := s.history.Append(ctx, entry); err != nil {
		logger.Error().Err(err).Str("session", session.ID()).Msg("record quiz history failed")
		return fmt.Errorf("record history: %w", err)
	}
	s.session = nil

	s.observer.QuizCompleted(entry.Category, entry.Format, entry.DurationSeconds)
	logger.Info().
		Str("session", session.ID()).
		Str("category", string(entry.Category)).
		Str("format", string(entry.Format)).
		Int("score", entry.Score).
		Int("total", entry.QuestionCount).
		Int64("duration_seconds", entry.DurationSeconds).
		Msg("quiz completed")

	s.presenter.OnEnd(domain.EndEvent{
		Score:           entry.Score,
		Total:           entry.QuestionCount,
		DurationSeconds: entry.DurationSeconds,
		HighestStreak:   entry.HighestStreak,
	})
	return nil
}

// LoadQuizHistory emits every recorded attempt, independent of any session.
func (s *QuizService) LoadQuizHistory(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	entries, err := s.history.ListAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("list quiz history failed")
		return fmt.Errorf("list history: %w", err)
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	s.presenter.OnHistory(entries)
	return nil
}

func (s *QuizService) activeSession() *Session {
	if s.session == nil || s.session.Finished() {
		return nil
	}
	return s.session
}

func (s *QuizService) emitFeedback(session *Session, q domain.Question, message string) {
	s.presenter.OnFeedback(domain.FeedbackEvent{
		Message:       message,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Score:         session.Score(),
		CurrentStreak: session.CurrentStreak(),
		HighestStreak: session.HighestStreak(),
	})
}
