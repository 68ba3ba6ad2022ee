package service

import (
	"context"
	"fmt"
	"time"

	"github.com/huecal/huecal-engine/internal/domain"
	"github.com/huecal/huecal-engine/internal/eventid"
	"github.com/huecal/huecal-engine/internal/store"
)

// ErrNoCalendarDefaults is returned by ResetToListDefaults when the owning
// calendar has nothing configured to fall back to. The caller surfaces this
// as an alternative dialog path; the event's override is left untouched.
var ErrNoCalendarDefaults = store.ErrNotFound.WithMessage("no list defaults configured for this calendar")

// RecolorChoice is the user's answer to the "additional styling will be
// lost" decision surfaced by PlanFlatRecolor.
type RecolorChoice int

const (
	// RecolorReplace drops existing text/border styling in favor of a flat
	// background.
	RecolorReplace RecolorChoice = iota
	// RecolorKeep preserves existing non-background styling.
	RecolorKeep
)

// FlatRecolorPlan reports whether picking a plain background color needs a
// user decision first.
type FlatRecolorPlan struct {
	// NeedsDecision is true when the event carries text or border styling
	// that a flat recolor would silently drop.
	NeedsDecision bool
	// Existing is the effective record examined, nil when the event has no
	// override yet.
	Existing *domain.ColorOverride
}

// PlanFlatRecolor inspects the current state of an event before a plain
// background pick. When the effective record carries text or border styling
// the caller must ask the user whether to keep it, then call
// ApplyFlatRecolor with the answer.
func (r *Resolver) PlanFlatRecolor(rawID string) FlatRecolorPlan {
	existing := r.effectiveOverride(eventid.Decode(rawID))
	if existing == nil || existing.UseHostColors {
		return FlatRecolorPlan{Existing: existing}
	}
	return FlatRecolorPlan{
		NeedsDecision: existing.Text != nil || existing.Border != nil,
		Existing:      existing,
	}
}

// ApplyFlatRecolor executes the outcome of a flat-recolor decision.
func (r *Resolver) ApplyFlatRecolor(ctx context.Context, rawID, color string, choice RecolorChoice, applyToAll bool) error {
	if choice == RecolorKeep {
		return r.ApplyBackgroundMerge(ctx, rawID, color, applyToAll)
	}
	return r.ApplyBackgroundOnly(ctx, rawID, color, applyToAll)
}

// ApplyBackgroundOnly writes a flat background override. Text and border are
// cleared and calendar defaults are suppressed on purpose: the user asked
// for "this flat color" and nothing inherited may leak through.
func (r *Resolver) ApplyBackgroundOnly(ctx context.Context, rawID, color string, applyToAll bool) error {
	ov := domain.NewColorOverride()
	ov.Background = &color
	ov.BorderWidth = domain.Int(domain.DefaultBorderWidth)
	ov.OverrideDefaults = true
	return r.putOverride(ctx, rawID, ov, applyToAll)
}

// ApplyBackgroundMerge changes the background while preserving the event's
// other styling, falling back per field to the calendar default so what the
// user currently sees is what gets pinned.
func (r *Resolver) ApplyBackgroundMerge(ctx context.Context, rawID, color string, applyToAll bool) error {
	ident := eventid.Decode(rawID)
	existing := r.effectiveOverride(ident)
	var def *domain.CalendarDefault
	if ident.OwnerSuffix != "" {
		def, _ = r.cache.CalendarDefault(ident.OwnerSuffix)
	}

	ov := domain.NewColorOverride()
	ov.Background = &color
	ov.Text = firstString(overrideText(existing), defaultText(def))
	ov.Border = firstString(overrideBorder(existing), defaultBorder(def))
	ov.BorderWidth = firstInt(overrideWidth(existing), defaultWidth(def))
	return r.putOverride(ctx, rawID, ov, applyToAll)
}

// ApplyFull writes all four fields verbatim from the full editor. When the
// editor produced nothing meaningful the write degrades to a delete, which
// is exactly what "reset" would do.
func (r *Resolver) ApplyFull(ctx context.Context, rawID string, colors *domain.ColorOverride, applyToAll bool) error {
	ov := domain.NewColorOverride()
	ov.Background = colors.Background
	ov.Text = colors.Text
	ov.Border = colors.Border
	ov.BorderWidth = colors.BorderWidth

	if ov.IsEmpty() {
		return r.Clear(ctx, rawID, applyToAll)
	}
	return r.putOverride(ctx, rawID, ov, applyToAll)
}

// ApplyTemplate applies a stored template preset to an event.
func (r *Resolver) ApplyTemplate(ctx context.Context, rawID, templateID string, applyToAll bool) error {
	template, err := r.store.GetTemplate(ctx, templateID)
	if err != nil {
		return fmt.Errorf("load template: %w", err)
	}
	return r.ApplyFull(ctx, rawID, template.Override(), applyToAll)
}

// MarkUseHostColors records "remove all coloring": the host renders its own
// palette color and every override and default tier is ignored.
func (r *Resolver) MarkUseHostColors(ctx context.Context, rawID string, applyToAll bool) error {
	ov := domain.NewColorOverride()
	ov.UseHostColors = true
	return r.putOverride(ctx, rawID, ov, applyToAll)
}

// Clear deletes the event's override outright, letting the calendar default
// tier take over. With applyToAll it removes every record of the series.
func (r *Resolver) Clear(ctx context.Context, rawID string, applyToAll bool) error {
	ident := eventid.Decode(rawID)

	// Cache first; see putOverride.
	r.cache.DeleteOverride(rawID)
	if applyToAll && ident.Valid() {
		r.cache.DeleteSeriesExcept(seriesMatcher(ident.BaseID), "")
	}

	if err := r.store.DeleteOverride(ctx, rawID); err != nil {
		r.logger.Error("clear override failed", "event_id", rawID, "error", err)
		return fmt.Errorf("delete override: %w", err)
	}
	if applyToAll && ident.Valid() {
		if err := r.store.DeleteSeriesOverrides(ctx, ident.BaseID, ""); err != nil {
			r.logger.Error("clear series overrides failed", "base_id", ident.BaseID, "error", err)
			return fmt.Errorf("delete series overrides: %w", err)
		}
	}
	return nil
}

// ResetToListDefaults clears the event's override so the calendar default
// shows — unless the calendar has no defaults configured, in which case the
// caller gets ErrNoCalendarDefaults to surface instead of a silent no-op.
func (r *Resolver) ResetToListDefaults(ctx context.Context, rawID string, applyToAll bool) error {
	ident := eventid.Decode(rawID)

	def, ok := r.cache.CalendarDefault(ident.OwnerSuffix)
	if ident.OwnerSuffix == "" || !ok || def.IsEmpty() {
		return ErrNoCalendarDefaults
	}
	return r.Clear(ctx, rawID, applyToAll)
}

// putOverride is the single write path behind every apply operation.
//
// Ordering matters: the cache is updated before the storage write is issued,
// because the host page can re-render (and re-query colors) in the same
// event-loop turn as the user's edit. Persisting first would flicker the old
// color back in. A failed write is logged and leaves the cache optimistic;
// the next wholesale refresh reconverges.
func (r *Resolver) putOverride(ctx context.Context, rawID string, ov *domain.ColorOverride, applyToAll bool) error {
	if err := r.validator.Validate(ov); err != nil {
		return err
	}

	ident := eventid.Decode(rawID)
	key := rawID
	if applyToAll && ident.Valid() {
		key = ident.CanonicalKey()
		ov.IsRecurring = true
	}
	ov.AppliedAt = time.Now()

	r.cache.PutOverride(key, ov)
	if applyToAll && ident.Valid() {
		r.cache.DeleteSeriesExcept(seriesMatcher(ident.BaseID), key)
	}

	if err := r.store.PutOverride(ctx, key, ov); err != nil {
		r.logger.Error("persist override failed", "event_id", key, "error", err)
		return fmt.Errorf("put override: %w", err)
	}

	if applyToAll && ident.Valid() {
		// Drop stale per-instance records so they cannot shadow the series
		// record on the next render.
		if err := r.store.DeleteSeriesOverrides(ctx, ident.BaseID, key); err != nil {
			r.logger.Error("series cleanup failed", "base_id", ident.BaseID, "error", err)
			return fmt.Errorf("series cleanup: %w", err)
		}
	}

	r.logger.Debug("override written",
		"event_id", key,
		"apply_to_all", applyToAll,
	)
	return nil
}

func seriesMatcher(baseID string) func(key string) bool {
	return func(key string) bool {
		ident := eventid.Decode(key)
		return ident.Valid() && ident.BaseID == baseID
	}
}

func firstString(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstInt(values ...*int) *int {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func overrideText(ov *domain.ColorOverride) *string {
	if ov == nil {
		return nil
	}
	return ov.Text
}

func overrideBorder(ov *domain.ColorOverride) *string {
	if ov == nil {
		return nil
	}
	return ov.Border
}

func overrideWidth(ov *domain.ColorOverride) *int {
	if ov == nil {
		return nil
	}
	return ov.BorderWidth
}

func defaultText(def *domain.CalendarDefault) *string {
	if def == nil {
		return nil
	}
	return def.Text
}

func defaultBorder(def *domain.CalendarDefault) *string {
	if def == nil {
		return nil
	}
	return def.Border
}

func defaultWidth(def *domain.CalendarDefault) *int {
	if def == nil {
		return nil
	}
	return def.BorderWidth
}
