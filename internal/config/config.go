// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by the Lambda and HTTP entry points.
type Config struct {
	// APIKey is the Gemini credential. Missing is not a parse error; every
	// translation reports it as a configuration failure instead.
	APIKey         string        `env:"GEMINI_API_KEY"`
	Model          string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	BaseURL        string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	Timeout        time.Duration `env:"GEMINI_TIMEOUT" envDefault:"60s"`
	MaxInputTokens int           `env:"MAX_INPUT_TOKENS" envDefault:"30000"`
	Environment    string        `env:"ENVIRONMENT" envDefault:"dev"`
	Port           int           `env:"PORT" envDefault:"8080"`
	FunctionName   string        `env:"AWS_LAMBDA_FUNCTION_NAME"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxInputTokens < 0 {
		return Config{}, fmt.Errorf("MAX_INPUT_TOKENS must be >= 0, got %d", cfg.MaxInputTokens)
	}
	return cfg, nil
}
