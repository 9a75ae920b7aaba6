package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds all library configuration
type Config struct {
	// DebugEnabled turns on action and SQL debug logging
	DebugEnabled bool `env:"APIACTION_DEBUG" envDefault:"false"`

	// BasePath prefixes resource endpoints, e.g. "/api/v1"
	BasePath string `env:"APIACTION_BASE_PATH"`

	// Database is the sqlite DSN used by the action journal
	Database string `env:"APIACTION_DATABASE" envDefault:":memory:"`
}

// LoadConfig loads configuration from environment variables.
// .env file is automatically loaded via autoload import
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse env")
	}

	if cfg.DebugEnabled {
		log.Printf("[CONFIG] debug logging enabled, base path %q, database %q", cfg.BasePath, cfg.Database)
	}

	return cfg, nil
}
