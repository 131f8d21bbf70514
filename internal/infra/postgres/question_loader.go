package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"geoquiz-service/internal/domain"
)

// QuestionLoader loads question pools from the questions table.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadPool(ctx context.Context, category domain.Category, format domain.AnswerFormat) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT prompt, options, correct_answer, aliases, explanation, media_ref
		FROM questions
		WHERE category = $1 AND answer_format = $2
		ORDER BY position, id`, string(category), string(format))
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			rawOptions []byte
			rawAliases []byte
		)
		q := domain.Question{Category: category, Format: format}
		if err := rows.Scan(&q.Prompt, &rawOptions, &q.CorrectAnswer, &rawAliases, &q.Explanation, &q.MediaRef); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
		if err := json.Unmarshal(rawAliases, &q.Aliases); err != nil {
			return nil, fmt.Errorf("unmarshal aliases: %w", err)
		}
		if err := q.Validate(); err != nil {
			return nil, err
		}
		questions = append(questions, q.WithDefaults())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}

// SeedQuestions inserts questions keeping their slice order as position.
func SeedQuestions(ctx context.Context, pool *pgxpool.Pool, questions []domain.Question) error {
	for i, q := range questions {
		options, err := json.Marshal(q.WithDefaults().Options)
		if err != nil {
			return err
		}
		aliases, err := json.Marshal(q.WithDefaults().Aliases)
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO questions (category, answer_format, position, prompt, options, correct_answer, aliases, explanation, media_ref)
			VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7::jsonb, $8, $9)`,
			string(q.Category), string(q.Format), i, q.Prompt, string(options), q.CorrectAnswer, string(aliases), q.Explanation, q.MediaRef)
		if err != nil {
			return fmt.Errorf("seed question %d: %w", i+1, err)
		}
	}
	return nil
}
