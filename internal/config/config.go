package config

import (
	"os"
	"strconv"

	"fiscalsim/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Sim      SimConfig
	Paths    PathConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// SimConfig holds simulation defaults
type SimConfig struct {
	MonteCarloTrials  int
	MonteCarloWorkers int
	Seed              int64
}

// PathConfig holds file system paths
type PathConfig struct {
	ExportDir string
}

// Load reads configuration from environment variables and validates it.
// DATABASE_URL is only required when the process actually uses storage;
// callers that run the engine standalone use LoadStandalone.
func Load() (*Config, error) {
	cfg := LoadStandalone()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}
	cfg.Database = DatabaseConfig{
		URL:     url,
		SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
	}

	return cfg, nil
}

// LoadStandalone reads everything except the database settings
func LoadStandalone() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Sim: SimConfig{
			MonteCarloTrials:  getEnvIntOrDefault("MC_TRIALS", 1000),
			MonteCarloWorkers: getEnvIntOrDefault("MC_WORKERS", 8),
			Seed:              int64(getEnvIntOrDefault("MC_SEED", 0)),
		},
		Paths: PathConfig{
			ExportDir: getEnvOrDefault("EXPORT_DIR", "."),
		},
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
