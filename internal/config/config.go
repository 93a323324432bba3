package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	DataDir          string
	LogLevel         string
	ParseWorkerCount int
	ParseQueueSize   int
	WeakThreshold    float64
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:examtrainer.db"),
		DataDir:          envOr("DATA_DIR", "data"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		ParseWorkerCount: envIntOr("PARSE_WORKER_COUNT", 2),
		ParseQueueSize:   envIntOr("PARSE_QUEUE_SIZE", 16),
		WeakThreshold:    envFloatOr("WEAK_THRESHOLD", 0.7),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR cannot be empty")
	}
	if c.ParseWorkerCount <= 0 {
		return fmt.Errorf("PARSE_WORKER_COUNT must be positive, got %d", c.ParseWorkerCount)
	}
	if c.ParseQueueSize <= 0 {
		return fmt.Errorf("PARSE_QUEUE_SIZE must be positive, got %d", c.ParseQueueSize)
	}
	if c.WeakThreshold <= 0 || c.WeakThreshold > 1 {
		return fmt.Errorf("WEAK_THRESHOLD must be in (0, 1], got %v", c.WeakThreshold)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
