package providers

import (
	"fmt"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/huecal/huecal-engine/internal/cache"
	"github.com/huecal/huecal-engine/internal/config"
	"github.com/huecal/huecal-engine/internal/notify"
	"github.com/huecal/huecal-engine/internal/store"
)

// ProvideHub provides the change notification hub.
func ProvideHub(i do.Injector) (*notify.Hub, error) {
	log := do.MustInvoke[*slog.Logger](i)
	return notify.NewHub(log), nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the settings store on the configured backend.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)
	hub := do.MustInvoke[*notify.Hub](i)

	var backend store.Backend
	var err error
	switch cfg.Storage.Backend {
	case store.BackendBadger:
		backend, err = store.NewBadgerBackend(cfg.Storage.Path)
	case store.BackendSQLite:
		backend, err = store.NewSQLiteBackend(cfg.Storage.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Storage.Backend, err)
	}

	s := store.New(backend, log, hub, store.Options{Namespace: cfg.Storage.Namespace})
	log.Info("storage initialized", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	return &StoreHandle{Store: s}, nil
}

// ProvideCache provides the in-memory settings cache.
func ProvideCache(i do.Injector) (*cache.Settings, error) {
	return cache.New(), nil
}
