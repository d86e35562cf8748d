package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables understood by parseEnv.
const (
	EnvDatabasePath = "DB_PATH"
	EnvSecretKey    = "SECRET_KEY"
	EnvLogLevel     = "LOG_LEVEL"
	EnvAPIKey       = "API_KEY"
	EnvDevExpose    = "DEV_EXPOSE_PASSWORD_HASHES"
)

// parseEnv overlays config with whichever of the variables above are set.
func parseEnv(config *Config) error {
	config.DatabasePath = getString(EnvDatabasePath, config.DatabasePath)
	config.SecretKey = getString(EnvSecretKey, config.SecretKey)
	config.LogLevel = getString(EnvLogLevel, config.LogLevel)
	config.APIKey = getString(EnvAPIKey, config.APIKey)

	expose, err := getBool(EnvDevExpose, config.DevExposePasswordHashes)
	if err != nil {
		return err
	}
	config.DevExposePasswordHashes = expose
	return nil
}

func getString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}
