package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/huecal/huecal-engine/internal/domain"
)

// ErrCalendarDefaultNotFound is returned when a calendar has no default record.
var ErrCalendarDefaultNotFound = ErrNotFound.WithMessage("calendar default not found")

// GetCalendarDefault retrieves the default colors for a calendar.
func (s *Store) GetCalendarDefault(ctx context.Context, calendarID string) (*domain.CalendarDefault, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var def domain.CalendarDefault
	err := s.get(calendarDefaultPrefix, calendarID, &def)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrCalendarDefaultNotFound
	}
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	return &def, nil
}

// PutCalendarDefault creates or replaces a calendar's default colors.
func (s *Store) PutCalendarDefault(ctx context.Context, def *domain.CalendarDefault) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.set(calendarDefaultPrefix, def.CalendarID, def); err != nil {
		return ErrStorage.WithCause(err)
	}
	s.emit(EventCalendarDefaultUpdated, def.CalendarID)
	return nil
}

// DeleteCalendarDefault removes a calendar's default colors.
func (s *Store) DeleteCalendarDefault(ctx context.Context, calendarID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.backend.Delete(s.key(calendarDefaultPrefix, calendarID)); err != nil {
		return ErrStorage.WithCause(err)
	}
	s.emit(EventCalendarDefaultDeleted, calendarID)
	return nil
}

// ListCalendarDefaults returns every stored calendar default keyed by
// calendar id.
func (s *Store) ListCalendarDefaults(ctx context.Context) (map[string]*domain.CalendarDefault, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]*domain.CalendarDefault)
	err := s.list(calendarDefaultPrefix, func(id string, value []byte) error {
		var def domain.CalendarDefault
		if err := json.Unmarshal(value, &def); err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping unreadable calendar default", "calendar_id", id, "error", err)
			}
			return nil
		}
		out[id] = &def
		return nil
	})
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	return out, nil
}

// SeedCalendarDefault records palette-fetched hints for a calendar. Text
// may be empty. The hint only lands when the calendar has no record yet or
// the existing record is itself a hint; a user-edited default is never
// touched.
func (s *Store) SeedCalendarDefault(ctx context.Context, calendarID, background, text string) error {
	existing, err := s.GetCalendarDefault(ctx, calendarID)
	if err != nil && !errors.Is(err, ErrCalendarDefaultNotFound) {
		return err
	}
	if existing != nil && !existing.FromPalette {
		return nil
	}

	def := domain.NewCalendarDefault(calendarID)
	def.Background = &background
	if text != "" {
		def.Text = &text
	}
	def.FromPalette = true
	if existing != nil && existing.Background != nil &&
		*existing.Background == background && equalOptional(existing.Text, def.Text) {
		return nil
	}
	return s.PutCalendarDefault(ctx, def)
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
