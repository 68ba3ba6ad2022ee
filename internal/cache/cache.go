// Package cache holds the in-memory copy of override and calendar-default
// records. The host page can trigger a re-render within the same event-loop
// turn as a user edit, long before a storage write lands, so every write path
// must update this cache synchronously before persisting. Reads during a
// render pass come exclusively from here.
package cache

import (
	"sync"

	"github.com/huecal/huecal-engine/internal/domain"
)

// Settings is the process-wide cache of stored color settings.
type Settings struct {
	mu        sync.RWMutex
	overrides map[string]*domain.ColorOverride
	defaults  map[string]*domain.CalendarDefault
}

// New creates an empty settings cache.
func New() *Settings {
	return &Settings{
		overrides: make(map[string]*domain.ColorOverride),
		defaults:  make(map[string]*domain.CalendarDefault),
	}
}

// Override returns the cached override for an event or series key.
func (c *Settings) Override(key string) (*domain.ColorOverride, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ov, ok := c.overrides[key]
	return ov.Clone(), ok
}

// PutOverride stores an override in the cache.
func (c *Settings) PutOverride(key string, override *domain.ColorOverride) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overrides[key] = override.Clone()
}

// DeleteOverride removes an override from the cache.
func (c *Settings) DeleteOverride(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.overrides, key)
}

// DeleteSeriesExcept removes every cached override matching the series
// except keepKey, mirroring the store-side cleanup after an apply-to-all.
func (c *Settings) DeleteSeriesExcept(matches func(key string) bool, keepKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.overrides {
		if key != keepKey && matches(key) {
			delete(c.overrides, key)
		}
	}
}

// CalendarDefault returns the cached default for a calendar id.
func (c *Settings) CalendarDefault(calendarID string) (*domain.CalendarDefault, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.defaults[calendarID]
	return def.Clone(), ok
}

// PutCalendarDefault stores a calendar default in the cache.
func (c *Settings) PutCalendarDefault(def *domain.CalendarDefault) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaults[def.CalendarID] = def.Clone()
}

// DeleteCalendarDefault removes a calendar default from the cache.
func (c *Settings) DeleteCalendarDefault(calendarID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.defaults, calendarID)
}

// ReplaceAll swaps in a wholesale snapshot loaded from storage. Used on
// change notifications and before bulk re-renders to recover from missed
// notifications.
func (c *Settings) ReplaceAll(overrides map[string]*domain.ColorOverride, defaults map[string]*domain.CalendarDefault) {
	fresh := make(map[string]*domain.ColorOverride, len(overrides))
	for key, ov := range overrides {
		fresh[key] = ov.Clone()
	}
	freshDefaults := make(map[string]*domain.CalendarDefault, len(defaults))
	for id, def := range defaults {
		freshDefaults[id] = def.Clone()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.overrides = fresh
	c.defaults = freshDefaults
}

// OverrideKeys returns a snapshot of the currently cached override keys.
func (c *Settings) OverrideKeys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.overrides))
	for key := range c.overrides {
		keys = append(keys, key)
	}
	return keys
}
