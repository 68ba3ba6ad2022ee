// Package di provides dependency injection configuration for the engine.
package di

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/huecal/huecal-engine/internal/cache"
	"github.com/huecal/huecal-engine/internal/config"
	"github.com/huecal/huecal-engine/internal/controller"
	"github.com/huecal/huecal-engine/internal/di/providers"
	"github.com/huecal/huecal-engine/internal/inject"
	"github.com/huecal/huecal-engine/internal/notify"
	"github.com/huecal/huecal-engine/internal/service"
	"github.com/huecal/huecal-engine/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
// The element source comes from the embedder; it is the one dependency the
// engine cannot construct itself.
func NewContainer(source controller.ElementSource) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideHub)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCache)

	// Services
	do.Provide(injector, providers.ProvideResolver)
	do.Provide(injector, providers.ProvideBroadcaster)
	do.Provide(injector, providers.ProvideLabels)
	do.Provide(injector, providers.ProvideCategories)
	do.Provide(injector, providers.ProvidePaletteClient)

	// Feature lifecycle
	do.Provide(injector, providers.ProvideScheduler)
	do.ProvideValue(injector, source)
	do.Provide(injector, providers.ProvideController)

	return injector
}

// Bootstrap initializes all services, triggering lazy construction of the
// whole graph.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*slog.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*notify.Hub](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*cache.Settings](injector)
	_ = do.MustInvoke[*service.Resolver](injector)
	_ = do.MustInvoke[*service.Broadcaster](injector)
	_ = do.MustInvoke[*service.Labels](injector)
	_ = do.MustInvoke[*service.Categories](injector)
	_ = do.MustInvoke[*inject.Scheduler](injector)
	_ = do.MustInvoke[*controller.Controller](injector)
	return nil
}
