package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskr-api/internal/config"
)

// loadAppConfig loads the application configuration from the environment,
// an optional .env file and an optional config.yaml.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfigSummary records the effective configuration without secrets.
func logConfigSummary(cfg *config.Config, logger *slog.Logger) {
	logger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"cache_backend", cfg.Cache.Backend,
		"token_expiry_seconds", cfg.Auth.ExpirySeconds)

	logger.Debug("Database configuration", "url_present", cfg.Database.URL != "")
	logger.Debug("Auth configuration", "token_secret_present", cfg.Auth.TokenSecret != "")
}
