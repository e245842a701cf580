package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration. Postgres and Redis are
// optional: leaving DB_HOST or REDIS_ADDR unset disables plan history
// and plan caching respectively.
type Config struct {
	Port string

	// OpenRouter
	OpenRouterAPIKey string
	OpenRouterURL    string
	Model            string
	RequestTimeout   time.Duration

	// Rate limiting for /api/generate-plan
	RateLimitRPS   float64
	RateLimitBurst int

	// Redis plan cache
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// Postgres plan history
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RetentionDays int
}

// Load reads the configuration from environment variables, with a .env
// overlay for local development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Failed to load .env file: %v (this is normal outside local development)", err)
	}

	getEnv := func(key, defaultValue string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return defaultValue
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterURL:    getEnv("OPENROUTER_URL", ""),
		Model:            getEnv("OPENROUTER_MODEL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "fitmentor"),
	}

	timeoutSec, err := strconv.Atoi(getEnv("REQUEST_TIMEOUT_SECONDS", "60"))
	if err != nil || timeoutSec <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be a positive integer")
	}
	cfg.RequestTimeout = time.Duration(timeoutSec) * time.Second

	cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "1"), 64)
	if err != nil || cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be a positive number")
	}
	cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "3"))
	if err != nil || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer")
	}

	cacheTTLMin, err := strconv.Atoi(getEnv("CACHE_TTL_MINUTES", "60"))
	if err != nil || cacheTTLMin <= 0 {
		return nil, fmt.Errorf("CACHE_TTL_MINUTES must be a positive integer")
	}
	cfg.CacheTTL = time.Duration(cacheTTLMin) * time.Minute

	cfg.RetentionDays, err = strconv.Atoi(getEnv("PLAN_RETENTION_DAYS", "90"))
	if err != nil || cfg.RetentionDays <= 0 {
		return nil, fmt.Errorf("PLAN_RETENTION_DAYS must be a positive integer")
	}

	return cfg, nil
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// DatabaseEnabled reports whether plan history is configured.
func (c *Config) DatabaseEnabled() bool { return c.DBHost != "" }

// CacheEnabled reports whether the Redis plan cache is configured.
func (c *Config) CacheEnabled() bool { return c.RedisAddr != "" }
