// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/tavernkeep/gm-engine/internal/errors"
)

// Config holds everything the server needs from its environment.
type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	GeminiAPIKey     string        `env:"GEMINI_API_KEY"`
	GeminiModel      string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	NarrativeTimeout time.Duration `env:"NARRATIVE_TIMEOUT" envDefault:"30s"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse environment")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, errors.InvalidArgument("GEMINI_API_KEY is required")
	}

	return cfg, nil
}
