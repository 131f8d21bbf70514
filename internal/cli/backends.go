package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"geoquiz-service/internal/app"
	"geoquiz-service/internal/config"
	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/infra/memory"
	"geoquiz-service/internal/infra/postgres"
	infraredis "geoquiz-service/internal/infra/redis"
	"geoquiz-service/internal/infra/sqlite"
	"geoquiz-service/internal/logging"
)

const defaultCacheTTL = 10 * time.Minute

// backends holds the collaborators shared by the server and the terminal player.
type backends struct {
	questions app.QuestionSource
	history   app.HistoryStore
	closers   []func()
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackends(ctx context.Context, cfg config.Config) (*backends, error) {
	logger := logging.FromContext(ctx)
	b := &backends{}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		b.closers = append(b.closers, func() { _ = redisClient.Close() })
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		var err error
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.closers = append(b.closers, pool.Close)
	}

	loader, err := questionLoader(cfg, pool)
	if err != nil {
		b.Close()
		return nil, err
	}
	if redisClient != nil {
		b.questions = infraredis.NewQuestionCatalog(redisClient, loader, config.TTLDuration(cfg.Redis.TTL, defaultCacheTTL))
	} else {
		b.questions = memory.NewQuestionCatalog(loader, config.TTLDuration(cfg.Catalog.TTL, defaultCacheTTL))
	}

	switch cfg.History.Driver {
	case config.HistoryRedis:
		b.history = infraredis.NewHistoryStore(redisClient)
	case config.HistoryPostgres:
		b.history = postgres.NewHistoryStore(pool)
	case config.HistorySQLite:
		store, err := sqlite.Open(ctx, cfg.History.SQLitePath)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = store.Close() })
		b.history = store
	default:
		b.history = memory.NewHistoryStore()
	}

	logger.Info().
		Bool("redis", redisClient != nil).
		Bool("postgres", pool != nil).
		Str("history", cfg.History.Driver).
		Msg("backends ready")
	return b, nil
}

// questionLoader prefers Postgres, then a configured YAML bank, then the built-in sample bank.
func questionLoader(cfg config.Config, pool *pgxpool.Pool) (memory.QuestionLoader, error) {
	if pool != nil {
		return postgres.NewQuestionLoader(pool), nil
	}
	questions, err := bankQuestions(cfg)
	if err != nil {
		return nil, err
	}
	return memory.NewStaticQuestionLoader(questions), nil
}

func bankQuestions(cfg config.Config) ([]domain.Question, error) {
	if cfg.Catalog.BankPath == "" {
		return memory.SampleQuestions(), nil
	}
	questions, err := memory.LoadQuestionBank(cfg.Catalog.BankPath)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	return questions, nil
}
