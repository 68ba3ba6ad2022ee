package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/huecal/huecal-engine/internal/cache"
	"github.com/huecal/huecal-engine/internal/config"
	"github.com/huecal/huecal-engine/internal/controller"
	"github.com/huecal/huecal-engine/internal/inject"
	"github.com/huecal/huecal-engine/internal/notify"
	"github.com/huecal/huecal-engine/internal/palette"
	"github.com/huecal/huecal-engine/internal/service"
	"github.com/huecal/huecal-engine/internal/validation"
)

// ProvideResolver provides the color resolver service.
func ProvideResolver(i do.Injector) (*service.Resolver, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	settings := do.MustInvoke[*cache.Settings](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewResolver(storeHandle.Store, settings, validator, log), nil
}

// ProvideBroadcaster provides the element painter.
func ProvideBroadcaster(i do.Injector) (*service.Broadcaster, error) {
	resolver := do.MustInvoke[*service.Resolver](i)
	log := do.MustInvoke[*slog.Logger](i)
	return service.NewBroadcaster(resolver, log), nil
}

// ProvideLabels provides the palette label service.
func ProvideLabels(i do.Injector) (*service.Labels, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*slog.Logger](i)
	return service.NewLabels(storeHandle.Store, validator, log), nil
}

// ProvideCategories provides the category and template service.
func ProvideCategories(i do.Injector) (*service.Categories, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*slog.Logger](i)
	return service.NewCategories(storeHandle.Store, validator, log), nil
}

// ProvidePaletteClient provides the palette fetcher, or nil when no
// endpoint is configured.
func ProvidePaletteClient(i do.Injector) (*palette.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if cfg.Palette.Endpoint == "" {
		return nil, nil
	}

	log := do.MustInvoke[*slog.Logger](i)
	return palette.New(cfg.Palette.Endpoint, log,
		palette.WithCacheTTL(cfg.Palette.CacheTTL),
		palette.WithTimeout(cfg.Palette.RequestTimeout),
	), nil
}

// ProvideScheduler provides the render pass scheduler.
func ProvideScheduler(i do.Injector) (*inject.Scheduler, error) {
	log := do.MustInvoke[*slog.Logger](i)
	return inject.New(log), nil
}

// ProvideController provides the feature controller.
func ProvideController(i do.Injector) (*controller.Controller, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return controller.New(controller.Deps{
		Store:       storeHandle.Store,
		Cache:       do.MustInvoke[*cache.Settings](i),
		Resolver:    do.MustInvoke[*service.Resolver](i),
		Broadcaster: do.MustInvoke[*service.Broadcaster](i),
		Labels:      do.MustInvoke[*service.Labels](i),
		Palette:     do.MustInvoke[*palette.Client](i),
		Scheduler:   do.MustInvoke[*inject.Scheduler](i),
		Hub:         do.MustInvoke[*notify.Hub](i),
		Source:      do.MustInvoke[controller.ElementSource](i),
		Logger:      do.MustInvoke[*slog.Logger](i),
	}), nil
}
