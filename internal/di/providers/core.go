// Package providers contains dependency injection providers for the engine.
package providers

import (
	"log/slog"
	"os"

	"github.com/samber/do/v2"

	"github.com/huecal/huecal-engine/internal/config"
	"github.com/huecal/huecal-engine/internal/logger"
	"github.com/huecal/huecal-engine/internal/validation"
)

// ProvideConfig provides the engine configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.Load(os.Getenv("HUECAL_ENV_FILE"))
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*slog.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Format:      cfg.Logger.Format,
		Environment: cfg.App.Environment,
		Level:       logger.ParseLevel(cfg.Logger.Level),
	})

	log.Info("starting huecal engine",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"storage_backend", cfg.Storage.Backend,
	)

	return log, nil
}

// ProvideValidator provides the record validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
