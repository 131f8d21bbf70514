package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// History backends.
const (
	HistoryMemory   = "memory"
	HistoryRedis    = "redis"
	HistoryPostgres = "postgres"
	HistorySQLite   = "sqlite"
)

type Config struct {
	App      App      `yaml:"app"`
	Server   Server   `yaml:"server"`
	Log      Log      `yaml:"log"`
	Redis    Redis    `yaml:"redis"`
	Postgres Postgres `yaml:"postgres"`
	Catalog  Catalog  `yaml:"catalog"`
	History  History  `yaml:"history"`
	Quiz     Quiz     `yaml:"quiz"`
}

type App struct {
	Name string `yaml:"name" env:"APP_NAME"`
	Env  string `yaml:"env" env:"APP_ENV"`
}

type Server struct {
	Port           string   `yaml:"port" env:"PORT"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
	TTL      string `yaml:"ttl" env:"REDIS_TTL"`
}

type Postgres struct {
	URL string `yaml:"url" env:"POSTGRES_URL"`
}

// Catalog configures where questions come from and how long pools are cached.
type Catalog struct {
	TTL      string `yaml:"ttl" env:"CATALOG_TTL"`
	BankPath string `yaml:"bank_path" env:"QUESTION_BANK_PATH"`
}

// History selects the history backend: memory, redis, postgres or sqlite.
type History struct {
	Driver     string `yaml:"driver" env:"HISTORY_DRIVER"`
	SQLitePath string `yaml:"sqlite_path" env:"HISTORY_SQLITE_PATH"`
}

type Quiz struct {
	DefaultCount int    `yaml:"default_count" env:"QUIZ_DEFAULT_COUNT"`
	TimeLimit    string `yaml:"time_limit" env:"QUIZ_TIME_LIMIT"`
}

// Load reads YAML config from path, then applies environment overrides.
// A missing file is not an error; defaults and environment still apply.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "geoquiz-service"
	}
	if c.App.Env == "" {
		c.App.Env = "development"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.History.Driver == "" {
		c.History.Driver = HistoryMemory
	}
	if c.History.SQLitePath == "" {
		c.History.SQLitePath = "quiz_history.db"
	}
	if c.Quiz.DefaultCount <= 0 {
		c.Quiz.DefaultCount = 10
	}
}

func (c Config) validate() error {
	switch c.History.Driver {
	case HistoryMemory, HistorySQLite:
	case HistoryRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("history driver %q requires redis.addr", c.History.Driver)
		}
	case HistoryPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("history driver %q requires postgres.url", c.History.Driver)
		}
	default:
		return fmt.Errorf("unknown history driver %q", c.History.Driver)
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
