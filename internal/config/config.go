// Package config loads engine configuration from environment variables and
// an optional .env file. The engine runs embedded in a host process, so
// there is no command-line surface; the embedder sets the environment.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huecal/huecal-engine/internal/store"
)

// Config holds the engine configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Storage StorageConfig
	Palette PaletteConfig
	Inject  InjectConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string
	Format string // "pretty" or "json"
}

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	// Backend selects the key-value backend: "badger" or "sqlite".
	Backend string
	// Path is the directory (badger) or file (sqlite) for the database.
	Path string
	// Namespace prefixes every stored key, isolating multiple accounts
	// sharing one database.
	Namespace string
}

// PaletteConfig holds the companion palette endpoint configuration. An
// empty endpoint disables palette seeding entirely.
type PaletteConfig struct {
	Endpoint       string
	CacheTTL       time.Duration
	RequestTimeout time.Duration
}

// InjectConfig holds render-pass configuration.
type InjectConfig struct {
	// IDAttribute is the element attribute carrying the raw event id.
	IDAttribute string
}

// Load builds configuration with precedence: environment variables, then
// the .env file, then defaults. Pass an empty envFile to use "./.env".
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	// Missing .env is fine; the environment alone may be complete.
	_ = loadEnvFile(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue("HUECAL_ENV", "development"),
		},
		Logger: LoggerConfig{
			Level:  getConfigValue("HUECAL_LOG_LEVEL", "info"),
			Format: getConfigValue("HUECAL_LOG_FORMAT", ""),
		},
		Storage: StorageConfig{
			Backend:   getConfigValue("HUECAL_STORAGE_BACKEND", store.BackendBadger),
			Path:      getConfigValue("HUECAL_STORAGE_PATH", ""),
			Namespace: getConfigValue("HUECAL_STORAGE_NAMESPACE", ""),
		},
		Palette: PaletteConfig{
			Endpoint: getConfigValue("HUECAL_PALETTE_ENDPOINT", ""),
		},
		Inject: InjectConfig{
			IDAttribute: getConfigValue("HUECAL_INJECT_ID_ATTRIBUTE", "data-eventid"),
		},
	}

	cacheTTL, err := getDurationConfigValue("HUECAL_PALETTE_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.Palette.CacheTTL = cacheTTL

	requestTimeout, err := getDurationConfigValue("HUECAL_PALETTE_REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Palette.RequestTimeout = requestTimeout

	if err := cfg.expandStoragePath(); err != nil {
		return nil, fmt.Errorf("invalid storage path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("HUECAL_ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Storage.Backend {
	case store.BackendBadger, store.BackendSQLite:
	default:
		return fmt.Errorf("invalid storage backend: %s (must be %s or %s)",
			c.Storage.Backend, store.BackendBadger, store.BackendSQLite)
	}

	if c.Storage.Path == "" {
		return errors.New("storage path cannot be empty after expansion")
	}

	if c.Palette.Endpoint != "" && !strings.HasPrefix(c.Palette.Endpoint, "http") {
		return fmt.Errorf("invalid palette endpoint: %s", c.Palette.Endpoint)
	}

	return nil
}

// expandStoragePath expands ~ and makes the path absolute, defaulting to
// ~/.huecal/<backend>.
func (c *Config) expandStoragePath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, ".huecal", c.Storage.Backend)

	expanded, err := expandPath(c.Storage.Path, defaultPath)
	if err != nil {
		return err
	}
	c.Storage.Path = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the env var if set, else the default.
func getConfigValue(envKey, defaultValue string) string {
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getDurationConfigValue parses a duration env var, falling back to the
// default when unset.
func getDurationConfigValue(envKey string, defaultValue time.Duration) (time.Duration, error) {
	strValue := os.Getenv(envKey)
	if strValue == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, strValue, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Real environment variables take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
