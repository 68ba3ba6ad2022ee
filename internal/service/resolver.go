// Package service implements the engine's operations on top of the store
// and the settings cache: resolving effective event colors, the write paths
// behind the picker UI, series broadcasting, palette labels, and category
// and template management.
package service

import (
	"log/slog"

	"github.com/huecal/huecal-engine/internal/cache"
	"github.com/huecal/huecal-engine/internal/domain"
	"github.com/huecal/huecal-engine/internal/eventid"
	"github.com/huecal/huecal-engine/internal/store"
	"github.com/huecal/huecal-engine/internal/validation"
)

// Resolver computes effective event colors and owns every override write
// path. All reads during a render pass come from the cache, never from
// storage.
type Resolver struct {
	store     *store.Store
	cache     *cache.Settings
	validator *validation.Validator
	logger    *slog.Logger
}

// NewResolver creates a resolver service.
func NewResolver(st *store.Store, settings *cache.Settings, v *validation.Validator, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:     st,
		cache:     settings,
		validator: v,
		logger:    logger,
	}
}

// Sources are the records feeding one resolution, already looked up by tier.
type Sources struct {
	// Override is the instance-level record stored under the raw event id.
	Override *domain.ColorOverride
	// SeriesOverride is the record stored under the canonical series key.
	// Consulted only when no instance-level record exists.
	SeriesOverride *domain.ColorOverride
	// CalendarDefault is the owning calendar's fallback tier.
	CalendarDefault *domain.CalendarDefault
}

// Resolve merges the source tiers into the effective colors for one event.
// Precedence is per field, not per record: each of background, text and
// border independently takes the effective override value when set, else the
// calendar default, else nothing.
//
// A nil result means "apply nothing at all": either the effective record
// opts back into host colors, or every tier came up empty.
func Resolve(src Sources) *domain.ResolvedColors {
	ov := src.Override
	if ov == nil {
		ov = src.SeriesOverride
	}

	// UseHostColors escapes the entire stack, calendar defaults included.
	if ov != nil && ov.UseHostColors {
		return nil
	}

	def := src.CalendarDefault
	if ov != nil && ov.OverrideDefaults {
		def = nil
	}

	resolved := &domain.ResolvedColors{BorderWidth: domain.DefaultBorderWidth}
	if ov != nil {
		resolved.Background = ov.Background
		resolved.Text = ov.Text
		resolved.Border = ov.Border
	}
	if def != nil {
		if resolved.Background == nil {
			resolved.Background = def.Background
		}
		if resolved.Text == nil {
			resolved.Text = def.Text
		}
		if resolved.Border == nil {
			resolved.Border = def.Border
		}
	}

	// Width uses defined-ness, not truthiness: zero is a legal width and
	// must not fall through to the tier below.
	switch {
	case ov != nil && ov.BorderWidth != nil:
		resolved.BorderWidth = *ov.BorderWidth
	case def != nil && def.BorderWidth != nil:
		resolved.BorderWidth = *def.BorderWidth
	}

	if resolved.Background == nil && resolved.Text == nil && resolved.Border == nil &&
		resolved.BorderWidth == domain.DefaultBorderWidth {
		return nil
	}
	return resolved
}

// ResolveEvent computes the effective colors for a rendered event id using
// cached records. It never fails outward: any internal panic is logged and
// the event renders with host-native styling.
func (r *Resolver) ResolveEvent(rawID string) (resolved *domain.ResolvedColors) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("resolve panicked, falling back to host styling",
				"event_id", rawID,
				"panic", rec,
			)
			resolved = nil
		}
	}()

	ident := eventid.Decode(rawID)
	return Resolve(r.sources(ident))
}

// sources gathers the cached records for an identity.
func (r *Resolver) sources(ident eventid.Identity) Sources {
	src := Sources{}
	if ov, ok := r.cache.Override(ident.RawID); ok {
		src.Override = ov
	}
	if ident.IsRecurring() {
		if ov, ok := r.cache.Override(ident.CanonicalKey()); ok {
			src.SeriesOverride = ov
		}
	}
	if ident.OwnerSuffix != "" {
		if def, ok := r.cache.CalendarDefault(ident.OwnerSuffix); ok {
			src.CalendarDefault = def
		}
	}
	return src
}

// effectiveOverride returns the record a write path should treat as the
// current state for an event: its instance record, else its series record.
func (r *Resolver) effectiveOverride(ident eventid.Identity) *domain.ColorOverride {
	if ov, ok := r.cache.Override(ident.RawID); ok {
		return ov
	}
	if ident.IsRecurring() {
		if ov, ok := r.cache.Override(ident.CanonicalKey()); ok {
			return ov
		}
	}
	return nil
}
