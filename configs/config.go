package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	PresetScript = "script"
	PresetShell  = "shell"
)

var validVerbosities = map[string]bool{
	"queryPlanner":      true,
	"executionStats":    true,
	"allPlansExecution": true,
}

type Config struct {
	Port             string
	MongoURI         string
	DBName           string
	BooksCollection  string
	AuditCollection  string
	Preset           string
	PageSkip         int64
	PageLimit        int64
	PageSort         string
	ExplainVerbosity string
	QueryTimeout     time.Duration
	LogLevel         slog.Level
	JWTSecret        string
	UserId           string
	UserName         string
	UserPassword     string
}

// LoadConfig reads the environment, optionally seeded from a .env file.
// Unset variables fall back to the values the bookstore script has always used.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	cfg := Config{
		Port:             getenv("PORT", "8080"),
		MongoURI:         getenv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:           getenv("DB_NAME", "plp_bookstore"),
		BooksCollection:  getenv("BOOKS_COLLECTION", "books"),
		AuditCollection:  os.Getenv("AUDIT_COLLECTION"),
		Preset:           getenv("QUERY_PRESET", PresetScript),
		PageSort:         os.Getenv("PAGE_SORT"),
		ExplainVerbosity: getenv("EXPLAIN_VERBOSITY", "executionStats"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		UserId:           os.Getenv("HARD_CODED_USER_ID"),
		UserName:         os.Getenv("HARD_CODED_USER_NAME"),
		UserPassword:     os.Getenv("HARD_CODED_USER_PASSWORD"),
	}
	if _, set := os.LookupEnv("AUDIT_COLLECTION"); !set {
		cfg.AuditCollection = "audit_logs"
	}

	var err error
	if cfg.PageSkip, err = getint("PAGE_SKIP", 5); err != nil {
		return Config{}, err
	}
	if cfg.PageLimit, err = getint("PAGE_LIMIT", 5); err != nil {
		return Config{}, err
	}
	if cfg.PageSkip < 0 || cfg.PageLimit < 0 {
		return Config{}, fmt.Errorf("invalid pagination window: skip=%d limit=%d", cfg.PageSkip, cfg.PageLimit)
	}

	cfg.QueryTimeout = 10 * time.Second
	if val := os.Getenv("QUERY_TIMEOUT"); val != "" {
		if cfg.QueryTimeout, err = time.ParseDuration(val); err != nil {
			return Config{}, fmt.Errorf("invalid QUERY_TIMEOUT: %w", err)
		}
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(val)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	if cfg.Preset != PresetScript && cfg.Preset != PresetShell {
		return Config{}, fmt.Errorf("invalid QUERY_PRESET %q", cfg.Preset)
	}
	if !ValidVerbosity(cfg.ExplainVerbosity) {
		return Config{}, fmt.Errorf("invalid EXPLAIN_VERBOSITY %q", cfg.ExplainVerbosity)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getint(key string, fallback int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// ValidVerbosity reports whether v is an explain verbosity the server accepts.
func ValidVerbosity(v string) bool {
	return validVerbosities[v]
}
