package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	DBPath          string
	LogLevel        string
	RankedAPIURL    string
	HTTPTimeout     time.Duration
	WarmWorkerCount int
	WarmQueueSize   int
	WarmLimit       int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the tool still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", "127.0.0.1:8080"),
		DBPath:          envOr("DB_PATH", "file:rankedversus.db"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		RankedAPIURL:    strings.TrimRight(envOr("RANKED_API_URL", "https://api.mcsrranked.com"), "/"),
		HTTPTimeout:     time.Duration(envIntOr("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		WarmWorkerCount: envIntOr("WARM_WORKER_COUNT", 2),
		WarmQueueSize:   envIntOr("WARM_QUEUE_SIZE", 32),
		WarmLimit:       envIntOr("WARM_LIMIT", 0),
	}
}

// Validate checks the configuration for values the tool cannot run with.
// A zero HTTPTimeout is allowed and leaves requests bounded only by the transport.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	u, err := url.Parse(c.RankedAPIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("RANKED_API_URL must be an absolute URL, got %q", c.RankedAPIURL)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS cannot be negative")
	}
	if c.WarmWorkerCount < 1 {
		return fmt.Errorf("WARM_WORKER_COUNT must be at least 1, got %d", c.WarmWorkerCount)
	}
	if c.WarmQueueSize < 1 {
		return fmt.Errorf("WARM_QUEUE_SIZE must be at least 1, got %d", c.WarmQueueSize)
	}
	if c.WarmLimit < 0 {
		return fmt.Errorf("WARM_LIMIT cannot be negative")
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
