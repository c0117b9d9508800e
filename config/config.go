package config

import (
	"fmt"
	"os"
	"time"
)

// PolicyRotation and PolicyExhaustive are the two scheduling modes the
// generation cycle can run with.
const (
	PolicyRotation   = "rotation"
	PolicyExhaustive = "exhaustive"
)

type Config struct {
	Port        string
	Environment string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterBaseURL string

	CronSecret        string
	SchedulingPolicy  string
	GenerationTimeout time.Duration
	StaleThreshold    time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "content_hub"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "anthropic/claude-3-haiku"),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),

		CronSecret:        getEnv("CRON_SECRET", ""),
		SchedulingPolicy:  getEnv("SCHEDULING_POLICY", PolicyRotation),
		GenerationTimeout: getEnvAsDuration("GENERATION_TIMEOUT", 2*time.Minute),
		StaleThreshold:    getEnvAsDuration("STALE_THRESHOLD", time.Hour),
	}
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
