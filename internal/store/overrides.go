package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/huecal/huecal-engine/internal/domain"
	"github.com/huecal/huecal-engine/internal/eventid"
)

// ErrOverrideNotFound is returned when no override exists for a key.
var ErrOverrideNotFound = ErrNotFound.WithMessage("color override not found")

// GetOverride retrieves the override stored under an event or series key.
// Legacy records written by early releases as a bare hex string are
// normalized to a background-only record on read.
func (s *Store) GetOverride(ctx context.Context, key string) (*domain.ColorOverride, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.backend.Get(s.key(overridePrefix, key))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}

	return decodeOverride(data)
}

// PutOverride writes an override record, replacing any previous record at
// the key.
func (s *Store) PutOverride(ctx context.Context, key string, override *domain.ColorOverride) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.set(overridePrefix, key, override); err != nil {
		return ErrStorage.WithCause(err)
	}
	s.emit(EventOverrideUpdated, key)
	return nil
}

// DeleteOverride removes the override at key. Deleting a missing key is not
// an error; the delete event still fires so caches converge.
func (s *Store) DeleteOverride(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.backend.Delete(s.key(overridePrefix, key)); err != nil {
		return ErrStorage.WithCause(err)
	}
	s.emit(EventOverrideDeleted, key)
	return nil
}

// ListOverrides returns every stored override keyed by its event or series
// key. Unreadable records are skipped with a warning rather than failing the
// whole load; one corrupt record must not take coloring down.
func (s *Store) ListOverrides(ctx context.Context) (map[string]*domain.ColorOverride, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]*domain.ColorOverride)
	err := s.list(overridePrefix, func(id string, value []byte) error {
		override, err := decodeOverride(value)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping unreadable override record", "key", id, "error", err)
			}
			return nil
		}
		out[id] = override
		return nil
	})
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	return out, nil
}

// ListSeriesOverrides returns the keys of every stored override whose
// decoded identity belongs to the given series.
func (s *Store) ListSeriesOverrides(ctx context.Context, baseID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var keys []string
	err := s.list(overridePrefix, func(id string, _ []byte) error {
		if ident := eventid.Decode(id); ident.Valid() && ident.BaseID == baseID {
			keys = append(keys, id)
		}
		return nil
	})
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	return keys, nil
}

// DeleteSeriesOverrides removes every override of the series except the one
// at keepKey. This is the cleanup step behind "apply to all instances":
// without it, stale per-instance records would shadow the series record the
// next time the host renders those instances.
func (s *Store) DeleteSeriesOverrides(ctx context.Context, baseID, keepKey string) error {
	keys, err := s.ListSeriesOverrides(ctx, baseID)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if key == keepKey {
			continue
		}
		if err := s.DeleteOverride(ctx, key); err != nil {
			return fmt.Errorf("delete stale series override %q: %w", key, err)
		}
	}
	return nil
}

// decodeOverride parses a stored override, accepting both the structured
// format and the legacy bare-string format ("#rrggbb" meaning background
// only).
func decodeOverride(data []byte) (*domain.ColorOverride, error) {
	var override domain.ColorOverride
	if err := json.Unmarshal(data, &override); err == nil {
		return &override, nil
	}

	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil && legacy != "" {
		return &domain.ColorOverride{
			Background: &legacy,
			AppliedAt:  time.Time{},
		}, nil
	}

	return nil, ErrInvalidInput.WithMessage("unreadable override record")
}
