package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/infra/memory"
)

// QuestionCatalog caches question pools in Redis and falls back to a loader on cache miss.
// Pools are stored as JSON: SET quiz:pool:{category}:{format} [...questions]
type QuestionCatalog struct {
	client *redis.Client
	loader memory.QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *memory.Randomizer
}

func NewQuestionCatalog(client *redis.Client, loader memory.QuestionLoader, ttl time.Duration) *QuestionCatalog {
	return &QuestionCatalog{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    memory.NewRandomizer(),
	}
}

// Fetch returns up to count questions drawn at random from the cached pool.
func (c *QuestionCatalog) Fetch(ctx context.Context, category domain.Category, format domain.AnswerFormat, count int) ([]domain.Question, error) {
	pool, err := c.pool(ctx, category, format)
	if err != nil {
		return nil, err
	}
	return memory.PickQuestions(pool, count, c.rnd.Shuffle), nil
}

func (c *QuestionCatalog) pool(ctx context.Context, category domain.Category, format domain.AnswerFormat) ([]domain.Question, error) {
	key := c.poolKey(category, format)
	if pool, ok := c.cached(ctx, key); ok {
		return pool, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if pool, ok := c.cached(ctx, key); ok {
			return pool, nil
		}

		pool, err := c.loader.LoadPool(ctx, category, format)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(pool)
		if err != nil {
			return nil, fmt.Errorf("encode question pool: %w", err)
		}
		// best-effort: a failed write only costs another loader hit
		_ = c.client.Set(ctx, key, data, c.rnd.JitteredTTL(c.ttl)).Err()
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCatalog) cached(ctx context.Context, key string) ([]domain.Question, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var pool []domain.Question
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, false
	}
	return pool, true
}

func (c *QuestionCatalog) poolKey(category domain.Category, format domain.AnswerFormat) string {
	return "quiz:pool:" + string(category) + ":" + string(format)
}
