// Package server exposes the simulator over HTTP: submit a scenario, get
// back the summary and percentile bands, and browse persisted runs.
package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the HTTP server settings, loaded from NWSIM_* environment
// variables.
type Config struct {
	// Addr is the listen address.
	Addr string `env:"NWSIM_ADDR" envDefault:":8080"`
	// StorePath is the SQLite file for persisted runs.
	StorePath string `env:"NWSIM_STORE_PATH" envDefault:"networth_runs.db"`
	// RequestTimeout bounds a single simulation request.
	RequestTimeout time.Duration `env:"NWSIM_REQUEST_TIMEOUT" envDefault:"60s"`
	// MaxBodySize caps accepted scenario payloads in bytes.
	MaxBodySize int `env:"NWSIM_MAX_BODY_SIZE" envDefault:"1048576"`
	// MaxConcurrent overrides the engine's worker cap when positive.
	MaxConcurrent int `env:"NWSIM_MAX_CONCURRENT" envDefault:"0"`
	// MaxSimulations caps the path count a single request may ask for.
	// Zero disables the cap.
	MaxSimulations int `env:"NWSIM_MAX_SIMS" envDefault:"100000"`
	// MaxHorizon caps the simulated years a single request may ask for.
	// Zero disables the cap.
	MaxHorizon int `env:"NWSIM_MAX_HORIZON" envDefault:"120"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
