// Package config provides application configuration from command-line flags,
// environment variables, and .env files.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Server  ServerConfig
	Data    DataConfig
	Catalog CatalogConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DataConfig holds persistence configuration.
type DataConfig struct {
	// Path is the Badger database directory.
	Path string
}

// CatalogConfig holds external book catalog configuration.
type CatalogConfig struct {
	// BaseURL of the Google Books volumes endpoint. Overridable for tests.
	BaseURL string
	// Timeout for a single catalog request.
	Timeout time.Duration
	// RequestsPerMinute caps outbound catalog traffic.
	RequestsPerMinute int
}

// Flags carries command-line overrides. Callers parse their own flag set and
// hand the values over, which keeps LoadConfig usable from tests.
type Flags struct {
	Environment string
	LogLevel    string
	Port        string
	DataPath    string
	EnvFile     string
}

// LoadConfig builds configuration with precedence:
// 1. Command-line flags (highest).
// 2. Environment variables.
// 3. .env file.
// 4. Defaults (lowest).
func LoadConfig(flags Flags) (*Config, error) {
	envFile := flags.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Missing .env files are fine.
	_ = loadEnvFile(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(flags.Environment, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(flags.LogLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: getConfigValue(flags.Port, "SERVER_PORT", "8080"),
		},
		Data: DataConfig{
			Path: getConfigValue(flags.DataPath, "DATA_PATH", "./data"),
		},
		Catalog: CatalogConfig{
			BaseURL:           getConfigValue("", "CATALOG_BASE_URL", "https://www.googleapis.com/books/v1/volumes"),
			RequestsPerMinute: getIntConfigValue("", "CATALOG_REQUESTS_PER_MINUTE", 60),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = getDurationConfigValue("SERVER_READ_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = getDurationConfigValue("SERVER_WRITE_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = getDurationConfigValue("SERVER_IDLE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.Catalog.Timeout, err = getDurationConfigValue("CATALOG_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getConfigValue returns the first non-empty value of flag, env var, default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue is getConfigValue for integers; unparseable values fall
// back to the default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	raw := getConfigValue(flagValue, envKey, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}

// getDurationConfigValue reads a duration from the environment.
func getDurationConfigValue(envKey string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(envKey)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, raw, err)
	}
	return d, nil
}

// loadEnvFile loads KEY=VALUE pairs into the process environment.
// Existing environment variables are not overwritten.
func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}
