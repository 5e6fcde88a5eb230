// Package config loads server configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration.
type Config struct {
	Port        int    `env:"EMPIRED_PORT" envDefault:"8080"`
	DBPath      string `env:"EMPIRED_DB" envDefault:"data/empire.db"`
	SaveSlot    string `env:"EMPIRED_SAVE_SLOT" envDefault:"default"`
	AdminKey    string `env:"EMPIRED_ADMIN_KEY"`
	CORSOrigins string `env:"EMPIRED_CORS_ORIGINS"`
	TrustProxy  bool   `env:"EMPIRED_TRUST_PROXY"`
}

// Parse loads configuration from the environment.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
