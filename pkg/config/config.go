package config

import (
	"fmt"
	"os"
	"strconv"
)

// AppConfig holds the application configuration.
type AppConfig struct {
	ListenPort        string
	GinMode           string
	CatalogPath       string // Path to the YAML catalog of repositories and packages
	LogLevel          string
	LogDevelopment    bool
	MetricsEnabled    bool
	CORSAllowedOrigin string
}

// LoadConfig loads configuration from environment variables or defaults.
func LoadConfig() (*AppConfig, error) {
	logDevelopment, err := getEnvBool("LOG_DEVELOPMENT", false)
	if err != nil {
		return nil, err
	}
	metricsEnabled, err := getEnvBool("METRICS_ENABLED", true)
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		ListenPort:        getEnv("APP_PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "debug"), // "release" for production
		CatalogPath:       getEnv("CATALOG_PATH", "catalog.yaml"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogDevelopment:    logDevelopment,
		MetricsEnabled:    metricsEnabled,
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return b, nil
}
