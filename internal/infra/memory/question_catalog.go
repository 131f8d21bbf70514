package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"geoquiz-service/internal/domain"
)

// QuestionLoader fetches every question for a category and format from a backing store.
type QuestionLoader interface {
	LoadPool(ctx context.Context, category domain.Category, format domain.AnswerFormat) ([]domain.Question, error)
}

// QuestionCatalog caches question pools with TTL to avoid repeated loader hits
// and picks a shuffled subset per quiz.
type QuestionCatalog struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *Randomizer

	mu    sync.RWMutex
	cache map[string]cachedPool
}

type cachedPool struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionCatalog(loader QuestionLoader, ttl time.Duration) *QuestionCatalog {
	return &QuestionCatalog{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    NewRandomizer(),
		cache:  make(map[string]cachedPool),
	}
}

// Fetch returns up to count questions drawn at random from the pool.
func (c *QuestionCatalog) Fetch(ctx context.Context, category domain.Category, format domain.AnswerFormat, count int) ([]domain.Question, error) {
	pool, err := c.pool(ctx, category, format)
	if err != nil {
		return nil, err
	}
	return PickQuestions(pool, count, c.rnd.Shuffle), nil
}

func (c *QuestionCatalog) pool(ctx context.Context, category domain.Category, format domain.AnswerFormat) ([]domain.Question, error) {
	key := string(category) + ":" + string(format)
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.questions, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.questions, nil
		}
		c.mu.RUnlock()

		questions, err := c.loader.LoadPool(ctx, category, format)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[key] = cachedPool{
			questions: questions,
			expiresAt: now.Add(c.rnd.JitteredTTL(c.ttl)),
		}
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// Randomizer is a mutex-guarded random source for shuffling pools and
// spreading cache expirations.
type Randomizer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomizer() *Randomizer {
	return &Randomizer{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (r *Randomizer) Shuffle(qs []domain.Question) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rnd.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
}

// JitteredTTL adds up to 10% jitter to ttl. A non-positive ttl yields 0.
func (r *Randomizer) JitteredTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jitterMax := int64(ttl) / 10
	return ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// PickQuestions copies pool, shuffles the copy when shuffle is non-nil and
// returns at most count items. The pool itself is never reordered.
func PickQuestions(pool []domain.Question, count int, shuffle func([]domain.Question)) []domain.Question {
	picked := make([]domain.Question, len(pool))
	copy(picked, pool)
	if shuffle != nil {
		shuffle(picked)
	}
	if count >= 0 && count < len(picked) {
		picked = picked[:count]
	}
	return picked
}

// StaticQuestionLoader is a loader backed by an in-memory slice (useful for tests/demos).
type StaticQuestionLoader struct {
	questions []domain.Question
}

func NewStaticQuestionLoader(questions []domain.Question) *StaticQuestionLoader {
	return &StaticQuestionLoader{questions: questions}
}

func (l *StaticQuestionLoader) LoadPool(_ context.Context, category domain.Category, format domain.AnswerFormat) ([]domain.Question, error) {
	var pool []domain.Question
	for _, q := range l.questions {
		if q.Category == category && q.Format == format {
			pool = append(pool, q)
		}
	}
	return pool, nil
}
