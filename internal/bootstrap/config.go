package bootstrap

import (
	"flag"
	"fmt"

	"github.com/tracklawn/scheduler/internal/config"
	"github.com/tracklawn/scheduler/internal/logger"
)

// LoadConfig loads configuration. Uses the -config flag with the
// CONFIG_PATH default.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", config.GetConfigPath("config.yml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config, version string) (logger.Logger, error) {
	log, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", "scheduler"),
		logger.String("version", version),
	), nil
}
