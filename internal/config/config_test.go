package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesYAMLThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
redis:
  addr: localhost:6379
  ttl: 5m
history:
  driver: redis
quiz:
  default_count: 5
  time_limit: 20s
`), 0o600))
	t.Setenv("QUIZ_DEFAULT_COUNT", "7")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, HistoryRedis, cfg.History.Driver)
	assert.Equal(t, 7, cfg.Quiz.DefaultCount)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 20*time.Second, TTLDuration(cfg.Quiz.TimeLimit, 0))
	assert.Equal(t, "geoquiz-service", cfg.App.Name)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, HistoryMemory, cfg.History.Driver)
	assert.Equal(t, 10, cfg.Quiz.DefaultCount)
}

func TestLoadRejectsIncompleteHistoryBackend(t *testing.T) {
	t.Setenv("HISTORY_DRIVER", "postgres")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	t.Setenv("HISTORY_DRIVER", "cassandra")
	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestTTLDuration(t *testing.T) {
	assert.Equal(t, time.Minute, TTLDuration("", time.Minute))
	assert.Equal(t, time.Minute, TTLDuration("soon", time.Minute))
	assert.Equal(t, 90*time.Second, TTLDuration("90s", time.Minute))
}
