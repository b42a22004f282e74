package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string // development, production

	// Database (preference storage)
	DatabaseURL string

	// Analysis backend
	BackendURL     string
	BackendTimeout time.Duration

	// Uploads
	MaxUploadSizeMB  int
	SubmitsPerMinute int
	DefaultLanguage  string
}

func Load() (*Config, error) {
	// Load .env file if it exists (don't error if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	// Define flags with env var fallbacks
	flag.StringVar(&cfg.Port, "port", getEnv("PORT", "8080"), "Server port")
	flag.StringVar(&cfg.Env, "env", getEnv("ENV", "development"), "Environment (development, production)")
	flag.StringVar(&cfg.DatabaseURL, "database-url", getEnv("DATABASE_URL", "cropguard.db"), "SQLite database path")
	flag.StringVar(&cfg.BackendURL, "backend-url", getEnv("BACKEND_URL", ""), "Analysis backend base URL")
	flag.Parse()

	cfg.MaxUploadSizeMB = getEnvInt("MAX_UPLOAD_SIZE_MB", 50)
	cfg.SubmitsPerMinute = getEnvInt("SUBMITS_PER_MINUTE", 30)
	cfg.DefaultLanguage = getEnv("DEFAULT_LANGUAGE", "en")

	// No timeout unless configured; an in-flight analysis runs until it
	// settles.
	if v := getEnv("BACKEND_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parsing BACKEND_TIMEOUT: %w", err)
		}
		cfg.BackendTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE_MB must be positive")
	}
	if c.SubmitsPerMinute <= 0 {
		return fmt.Errorf("SUBMITS_PER_MINUTE must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
