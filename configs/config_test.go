package configs_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plp-bookstore/configs"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "MONGO_URI", "DB_NAME", "BOOKS_COLLECTION", "QUERY_PRESET",
		"PAGE_SKIP", "PAGE_LIMIT", "PAGE_SORT", "EXPLAIN_VERBOSITY",
		"QUERY_TIMEOUT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := configs.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "plp_bookstore", cfg.DBName)
	assert.Equal(t, "books", cfg.BooksCollection)
	assert.Equal(t, configs.PresetScript, cfg.Preset)
	assert.Equal(t, int64(5), cfg.PageSkip)
	assert.Equal(t, int64(5), cfg.PageLimit)
	assert.Empty(t, cfg.PageSort)
	assert.Equal(t, "executionStats", cfg.ExplainVerbosity)
	assert.Equal(t, 10*time.Second, cfg.QueryTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("QUERY_PRESET", "shell")
	t.Setenv("PAGE_SKIP", "10")
	t.Setenv("PAGE_LIMIT", "3")
	t.Setenv("PAGE_SORT", "-price")
	t.Setenv("QUERY_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AUDIT_COLLECTION", "")

	cfg, err := configs.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, configs.PresetShell, cfg.Preset)
	assert.Equal(t, int64(10), cfg.PageSkip)
	assert.Equal(t, int64(3), cfg.PageLimit)
	assert.Equal(t, "-price", cfg.PageSort)
	assert.Equal(t, 2*time.Second, cfg.QueryTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Empty(t, cfg.AuditCollection)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Non numeric skip", "PAGE_SKIP", "five"},
		{"Negative limit", "PAGE_LIMIT", "-1"},
		{"Bad timeout", "QUERY_TIMEOUT", "soon"},
		{"Unknown preset", "QUERY_PRESET", "repl"},
		{"Unknown verbosity", "EXPLAIN_VERBOSITY", "everything"},
		{"Unknown log level", "LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := configs.LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestValidVerbosity(t *testing.T) {
	for _, v := range []string{"queryPlanner", "executionStats", "allPlansExecution"} {
		assert.True(t, configs.ValidVerbosity(v), v)
	}
	for _, v := range []string{"", "everything", "executionstats"} {
		assert.False(t, configs.ValidVerbosity(v), v)
	}
}
