package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huecal/huecal-engine/internal/store"
)

func validConfig() *Config {
	return &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Storage: StorageConfig{Backend: store.BackendBadger, Path: "/some/path"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Backends(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Backend = store.BackendSQLite
	assert.NoError(t, cfg.Validate())

	cfg.Storage.Backend = "postgres"
	assert.Error(t, cfg.Validate())
}

func TestValidate_PaletteEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Palette.Endpoint = "https://example.com/palette"
	assert.NoError(t, cfg.Validate())

	cfg.Palette.Endpoint = "ftp://example.com"
	assert.Error(t, cfg.Validate())

	cfg.Palette.Endpoint = ""
	assert.NoError(t, cfg.Validate(), "empty endpoint disables palette seeding")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such.env"))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, store.BackendBadger, cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.Equal(t, 5*time.Minute, cfg.Palette.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.Palette.RequestTimeout)
	assert.Equal(t, "data-eventid", cfg.Inject.IDAttribute)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("HUECAL_ENV", "production")
	t.Setenv("HUECAL_LOG_LEVEL", "debug")
	t.Setenv("HUECAL_STORAGE_BACKEND", store.BackendSQLite)
	t.Setenv("HUECAL_STORAGE_PATH", "/tmp/huecal.db")
	t.Setenv("HUECAL_PALETTE_CACHE_TTL", "90s")

	cfg, err := Load(filepath.Join(t.TempDir(), "no-such.env"))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, store.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/huecal.db", cfg.Storage.Path)
	assert.Equal(t, 90*time.Second, cfg.Palette.CacheTTL)
}

func TestLoad_EnvFile(t *testing.T) {
	// loadEnvFile mutates the process environment; scope the keys to this
	// test so the values are restored afterwards.
	t.Setenv("HUECAL_LOG_LEVEL", "")
	t.Setenv("HUECAL_STORAGE_NAMESPACE", "")
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"# engine settings\n"+
			"HUECAL_LOG_LEVEL=warn\n"+
			"HUECAL_STORAGE_NAMESPACE=\"acct:\"\n"), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, "acct:", cfg.Storage.Namespace)
}

func TestLoad_EnvBeatsEnvFile(t *testing.T) {
	t.Setenv("HUECAL_LOG_LEVEL", "error")
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HUECAL_LOG_LEVEL=warn\n"), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logger.Level)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("HUECAL_PALETTE_CACHE_TTL", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "no-such.env"))
	require.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	got, err := expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("/explicit/path", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/explicit/path", got)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	got, err = expandPath("~/data", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data"), got)
}
