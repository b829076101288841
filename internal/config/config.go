package config

import (
	"os"
	"strconv"

	"insightsuite/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Insights InsightsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UploadConfig holds upload handling limits
type UploadConfig struct {
	MaxBytes int64
}

// InsightsConfig holds engine defaults
type InsightsConfig struct {
	LeaderboardLimit int
	PreviewRows      int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Upload: UploadConfig{
			MaxBytes: int64(getEnvInt("MAX_UPLOAD_MB", 50)) * 1024 * 1024,
		},
		Insights: InsightsConfig{
			LeaderboardLimit: getEnvInt("LEADERBOARD_LIMIT", 20),
			PreviewRows:      getEnvInt("PREVIEW_ROWS", 100),
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validate(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Insights.LeaderboardLimit <= 0 {
		return errors.ConfigInvalid("LEADERBOARD_LIMIT must be positive")
	}
	if config.Insights.PreviewRows <= 0 {
		return errors.ConfigInvalid("PREVIEW_ROWS must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
