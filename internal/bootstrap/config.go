// Package bootstrap wires the service components together for the cmd
// entrypoints.
package bootstrap

import (
	"fmt"
	"log"
	"os"

	"github.com/jonesrussell/report-triage/internal/config"
	"github.com/jonesrussell/report-triage/internal/logger"
)

// LoadConfig loads configuration from CONFIG_PATH (default config.yml).
// A missing file falls back to defaults with env overrides.
func LoadConfig() (*config.Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("Warning: failed to load config file (%s), using defaults: %v", path, err)
		return config.Load("")
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config) (logger.Logger, error) {
	lg, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return lg.With(logger.String("service", cfg.Service.Name)), nil
}
