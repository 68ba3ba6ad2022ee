package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/huecal/huecal-engine/internal/domain"
	"github.com/huecal/huecal-engine/internal/scheme"
	"github.com/huecal/huecal-engine/internal/store"
	"github.com/huecal/huecal-engine/internal/validation"
)

// Labels resolves and manages the user's custom names for palette colors.
// Lookups are served from an in-memory copy so the picker can annotate
// swatches without touching storage.
type Labels struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger

	mu    sync.RWMutex
	byHex map[string]string
}

// NewLabels creates a labels service with an empty lookup table; call Load
// to populate it from storage.
func NewLabels(st *store.Store, v *validation.Validator, logger *slog.Logger) *Labels {
	return &Labels{
		store:     st,
		validator: v,
		logger:    logger,
		byHex:     make(map[string]string),
	}
}

// Load replaces the lookup table with the stored labels.
func (l *Labels) Load(ctx context.Context) error {
	labels, err := l.store.ListLabels(ctx)
	if err != nil {
		return fmt.Errorf("list labels: %w", err)
	}

	byHex := make(map[string]string, len(labels))
	for _, label := range labels {
		byHex[domain.NormalizeHex(label.Hex)] = label.Text
	}

	l.mu.Lock()
	l.byHex = byHex
	l.mu.Unlock()
	return nil
}

// LabelFor returns the custom label for a hex color. When the exact hex has
// no label but its counterpart in the other palette scheme does, the
// counterpart's label is returned, so a label survives the host switching
// between modern and classic palettes.
func (l *Labels) LabelFor(hex string) (string, bool) {
	normalized := domain.NormalizeHex(hex)

	l.mu.RLock()
	defer l.mu.RUnlock()
	if text, ok := l.byHex[normalized]; ok {
		return text, true
	}
	if equivalent, ok := scheme.Equivalent(normalized); ok {
		if text, ok := l.byHex[equivalent]; ok {
			return text, true
		}
	}
	return "", false
}

// SetLabel stores a custom label for a hex color.
func (l *Labels) SetLabel(ctx context.Context, hex, text string) error {
	label := domain.NewLabel(hex, text)
	if err := l.validator.Validate(label); err != nil {
		return err
	}

	l.mu.Lock()
	l.byHex[label.Hex] = label.Text
	l.mu.Unlock()

	if err := l.store.PutLabel(ctx, label); err != nil {
		l.logger.Error("persist label failed", "hex", label.Hex, "error", err)
		return fmt.Errorf("put label: %w", err)
	}
	return nil
}

// DeleteLabel removes the custom label for a hex color.
func (l *Labels) DeleteLabel(ctx context.Context, hex string) error {
	normalized := domain.NormalizeHex(hex)

	l.mu.Lock()
	delete(l.byHex, normalized)
	l.mu.Unlock()

	if err := l.store.DeleteLabel(ctx, normalized); err != nil {
		l.logger.Error("delete label failed", "hex", normalized, "error", err)
		return fmt.Errorf("delete label: %w", err)
	}
	return nil
}
