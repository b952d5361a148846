package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string        `env:"ADDR" envDefault:":8080"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	DefaultLocale  string        `env:"DEFAULT_LOCALE" envDefault:"en"`
	RateLimit      int           `env:"RATE_LIMIT_PER_WINDOW" envDefault:"10"`
	RateWindow     time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	MaxBodyBytes   int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

// Load reads configuration from the environment (and an optional .env
// file) and validates it.
func Load() (*Config, error) {
	// .env is optional; variables may come from the environment itself
	// (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Useful local default when DATABASE_URL is not provided.
		c.DatabaseURL = "postgres://localhost:5432/eventdesk?sslmode=disable"
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("config: RATE_LIMIT_PER_WINDOW must not be negative")
	}
	if c.RateWindow <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_WINDOW must be positive")
	}

	return nil
}
