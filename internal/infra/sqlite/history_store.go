package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"geoquiz-service/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS quiz_history (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    category         TEXT NOT NULL,
    answer_format    TEXT NOT NULL,
    question_count   INTEGER NOT NULL,
    score            INTEGER NOT NULL,
    duration_seconds INTEGER NOT NULL,
    highest_streak   INTEGER NOT NULL,
    completed_at     INTEGER NOT NULL
)`

// HistoryStore keeps completed attempts in a local SQLite file.
type HistoryStore struct {
	db *sql.DB
}

// Open creates the database file if needed and ensures the schema exists.
func Open(ctx context.Context, path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &HistoryStore{db: db}, nil
}

func (s *HistoryStore) Close() error {
	return s.db.Close()
}

func (s *HistoryStore) Append(ctx context.Context, entry domain.HistoryEntry) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO quiz_history
		(category, answer_format, question_count, score, duration_seconds, highest_streak, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(entry.Category), string(entry.Format), entry.QuestionCount, entry.Score,
		entry.DurationSeconds, entry.HighestStreak, entry.CompletedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// ListAll returns entries most recent first.
func (s *HistoryStore) ListAll(ctx context.Context) ([]domain.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, answer_format, question_count, score, duration_seconds, highest_streak, completed_at
		FROM quiz_history ORDER BY completed_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var (
			entry     domain.HistoryEntry
			category  string
			format    string
			completed int64
		)
		if err := rows.Scan(&category, &format, &entry.QuestionCount, &entry.Score,
			&entry.DurationSeconds, &entry.HighestStreak, &completed); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entry.Category = domain.Category(category)
		entry.Format = domain.AnswerFormat(format)
		entry.CompletedAt = time.Unix(0, completed).UTC()
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
