package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/huecal/huecal-engine/internal/domain"
)

// ErrLabelNotFound is returned when no label exists for a palette color.
var ErrLabelNotFound = ErrNotFound.WithMessage("label not found")

// GetLabel retrieves the label for a host-native palette hex. Lookup is
// case-insensitive; keys are stored lowercased.
func (s *Store) GetLabel(ctx context.Context, hex string) (*domain.Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var label domain.Label
	err := s.get(labelPrefix, domain.NormalizeHex(hex), &label)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrLabelNotFound
	}
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	return &label, nil
}

// PutLabel creates or replaces the label for a palette hex.
func (s *Store) PutLabel(ctx context.Context, label *domain.Label) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	label.Hex = domain.NormalizeHex(label.Hex)
	if err := s.set(labelPrefix, label.Hex, label); err != nil {
		return ErrStorage.WithCause(err)
	}
	s.emit(EventLabelUpdated, label.Hex)
	return nil
}

// DeleteLabel removes the label for a palette hex.
func (s *Store) DeleteLabel(ctx context.Context, hex string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	normalized := domain.NormalizeHex(hex)
	if err := s.backend.Delete(s.key(labelPrefix, normalized)); err != nil {
		return ErrStorage.WithCause(err)
	}
	s.emit(EventLabelUpdated, normalized)
	return nil
}

// ListLabels returns every stored label keyed by lowercased hex.
func (s *Store) ListLabels(ctx context.Context) (map[string]*domain.Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]*domain.Label)
	err := s.list(labelPrefix, func(id string, value []byte) error {
		var label domain.Label
		if err := json.Unmarshal(value, &label); err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping unreadable label record", "hex", id, "error", err)
			}
			return nil
		}
		out[id] = &label
		return nil
	})
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	return out, nil
}
