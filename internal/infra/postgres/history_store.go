package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"geoquiz-service/internal/domain"
)

// HistoryStore persists completed attempts in the quiz_history table.
type HistoryStore struct {
	pool *pgxpool.Pool
}

func NewHistoryStore(pool *pgxpool.Pool) *HistoryStore {
	return &HistoryStore{pool: pool}
}

func (s *HistoryStore) Append(ctx context.Context, entry domain.HistoryEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO quiz_history (category, answer_format, question_count, score, duration_seconds, highest_streak, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(entry.Category), string(entry.Format), entry.QuestionCount, entry.Score,
		entry.DurationSeconds, entry.HighestStreak, entry.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// ListAll returns entries most recent first.
func (s *HistoryStore) ListAll(ctx context.Context) ([]domain.HistoryEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT category, answer_format, question_count, score, duration_seconds, highest_streak, completed_at
		FROM quiz_history
		ORDER BY completed_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var (
			entry    domain.HistoryEntry
			category string
			format   string
		)
		if err := rows.Scan(&category, &format, &entry.QuestionCount, &entry.Score,
			&entry.DurationSeconds, &entry.HighestStreak, &entry.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entry.Category = domain.Category(category)
		entry.Format = domain.AnswerFormat(format)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}
