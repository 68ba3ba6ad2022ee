// Package controller ties the engine together: it owns the feature
// lifecycle, keeps the settings cache converged with storage, and runs the
// render pass the scheduler triggers.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/huecal/huecal-engine/internal/cache"
	"github.com/huecal/huecal-engine/internal/inject"
	"github.com/huecal/huecal-engine/internal/notify"
	"github.com/huecal/huecal-engine/internal/palette"
	"github.com/huecal/huecal-engine/internal/service"
	"github.com/huecal/huecal-engine/internal/store"
)

// refreshTimeout bounds storage reads triggered by change notifications.
const refreshTimeout = 10 * time.Second

// ElementSource hands the controller the currently rendered event elements.
// The embedder adapts whatever view technology the host uses.
type ElementSource interface {
	Elements() []service.Element
}

// Controller drives the coloring feature. Activate starts it; while active,
// every scheduler notification runs a render pass over the source's
// elements.
type Controller struct {
	store       *store.Store
	cache       *cache.Settings
	resolver    *service.Resolver
	broadcaster *service.Broadcaster
	labels      *service.Labels
	palette     *palette.Client
	scheduler   *inject.Scheduler
	hub         *notify.Hub
	source      ElementSource
	logger      *slog.Logger

	mu         sync.Mutex
	active     bool
	subscribed bool
}

// Deps are the collaborators a controller needs. Palette may be nil when no
// endpoint is configured.
type Deps struct {
	Store       *store.Store
	Cache       *cache.Settings
	Resolver    *service.Resolver
	Broadcaster *service.Broadcaster
	Labels      *service.Labels
	Palette     *palette.Client
	Scheduler   *inject.Scheduler
	Hub         *notify.Hub
	Source      ElementSource
	Logger      *slog.Logger
}

// New creates a controller and registers its render pass with the
// scheduler.
func New(deps Deps) *Controller {
	c := &Controller{
		store:       deps.Store,
		cache:       deps.Cache,
		resolver:    deps.Resolver,
		broadcaster: deps.Broadcaster,
		labels:      deps.Labels,
		palette:     deps.Palette,
		scheduler:   deps.Scheduler,
		hub:         deps.Hub,
		source:      deps.Source,
		logger:      deps.Logger,
	}
	c.scheduler.Register(c.renderPass)
	return c
}

// Activate loads state from storage and starts coloring. Safe to call
// repeatedly; a second activation just refreshes.
func (c *Controller) Activate(ctx context.Context) error {
	if err := c.RefreshCaches(ctx); err != nil {
		return err
	}
	if err := c.labels.Load(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	if !c.subscribed {
		// The hub has no unsubscribe; the handler checks the active flag.
		c.hub.Subscribe(c.onStoreEvent)
		c.subscribed = true
	}
	c.active = true
	c.mu.Unlock()

	// Palette seeding is best-effort: the endpoint being down must not
	// block activation.
	c.seedPalette(ctx)

	c.logger.Info("coloring activated")
	c.scheduler.Notify()
	return nil
}

// Deactivate stops coloring and restores host styling on everything the
// engine painted.
func (c *Controller) Deactivate() {
	c.mu.Lock()
	wasActive := c.active
	c.active = false
	c.mu.Unlock()
	if !wasActive {
		return
	}

	for _, el := range c.source.Elements() {
		c.broadcaster.Apply(el, nil, service.ApplyOptions{})
	}
	c.logger.Info("coloring deactivated")
}

// Active reports whether the feature is currently on.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// RefreshCaches replaces the settings cache with a wholesale snapshot from
// storage. Covers anything a missed change notification left stale.
func (c *Controller) RefreshCaches(ctx context.Context) error {
	overrides, err := c.store.ListOverrides(ctx)
	if err != nil {
		return err
	}
	defaults, err := c.store.ListCalendarDefaults(ctx)
	if err != nil {
		return err
	}
	c.cache.ReplaceAll(overrides, defaults)
	return nil
}

// RepaintAll refreshes the cache from storage and repaints everything.
// Used for bulk re-renders (view switches, settings import) where a missed
// change notification would otherwise leave stale colors on screen.
func (c *Controller) RepaintAll(ctx context.Context) error {
	if err := c.RefreshCaches(ctx); err != nil {
		return err
	}
	c.scheduler.Notify()
	return nil
}

// renderPass resolves and paints every rendered element. Registered with
// the scheduler; runs only while active.
func (c *Controller) renderPass() {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()
	if !active {
		return
	}

	for _, el := range c.source.Elements() {
		c.broadcaster.Apply(el, c.resolver.ResolveEvent(el.EventID()), service.ApplyOptions{})
	}
}

// onStoreEvent converges the cache after a storage change and schedules a
// repaint. Writes made through this process already updated the cache; the
// reload covers writes from another window sharing the database.
func (c *Controller) onStoreEvent(event store.Event) {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()
	if !active {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	switch event.Type {
	case store.EventOverrideUpdated:
		if ov, err := c.store.GetOverride(ctx, event.Key); err == nil {
			c.cache.PutOverride(event.Key, ov)
		} else if errors.Is(err, store.ErrOverrideNotFound) {
			c.cache.DeleteOverride(event.Key)
		}
	case store.EventOverrideDeleted:
		c.cache.DeleteOverride(event.Key)
	case store.EventCalendarDefaultUpdated:
		if def, err := c.store.GetCalendarDefault(ctx, event.Key); err == nil {
			c.cache.PutCalendarDefault(def)
		} else if errors.Is(err, store.ErrCalendarDefaultNotFound) {
			c.cache.DeleteCalendarDefault(event.Key)
		}
	case store.EventCalendarDefaultDeleted:
		c.cache.DeleteCalendarDefault(event.Key)
	case store.EventLabelUpdated:
		if err := c.labels.Load(ctx); err != nil {
			c.logger.Warn("label reload failed", "error", err)
		}
		return
	default:
		return
	}

	c.scheduler.Notify()
}

// seedPalette fetches the host palette and records background hints for
// calendars the user has not configured.
func (c *Controller) seedPalette(ctx context.Context) {
	if c.palette == nil {
		return
	}

	entries, err := c.palette.Palette(ctx)
	if err != nil {
		c.logger.Warn("palette fetch failed", "error", err)
		return
	}

	for calendarID, entry := range entries {
		if entry.Background == "" {
			continue
		}
		if err := c.store.SeedCalendarDefault(ctx, calendarID, entry.Background, entry.Text); err != nil {
			c.logger.Warn("palette seed failed", "calendar_id", calendarID, "error", err)
		}
	}

	// Seeding writes through the store, so the hub already converged the
	// cache entry by entry.
}
