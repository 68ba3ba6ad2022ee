package domain

import "time"

// CalendarDefault is the per-calendar fallback tier below event overrides.
// Nil fields fall through to nothing (the host's own styling).
type CalendarDefault struct {
	CalendarID  string  `json:"calendar_id" validate:"required"`
	Background  *string `json:"background,omitempty" validate:"omitempty,hexcolor"`
	Text        *string `json:"text,omitempty" validate:"omitempty,hexcolor"`
	Border      *string `json:"border,omitempty" validate:"omitempty,hexcolor"`
	BorderWidth *int    `json:"border_width,omitempty" validate:"omitempty,min=0,max=32"`

	// FromPalette marks a record seeded from the external palette fetch.
	// Seeded records are a best-effort hint and may be replaced by a later
	// fetch; a user-edited record (FromPalette false) never is.
	FromPalette bool `json:"from_palette,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewCalendarDefault creates an empty default for a calendar.
func NewCalendarDefault(calendarID string) *CalendarDefault {
	return &CalendarDefault{CalendarID: calendarID, UpdatedAt: time.Now()}
}

// IsEmpty reports whether the record configures nothing. Used by the
// reset-to-list-defaults path to surface "no defaults configured" instead
// of silently clearing an event's override.
func (d *CalendarDefault) IsEmpty() bool {
	return d == nil ||
		d.Background == nil && d.Text == nil && d.Border == nil && d.BorderWidth == nil
}

// Clone returns a deep copy.
func (d *CalendarDefault) Clone() *CalendarDefault {
	if d == nil {
		return nil
	}
	c := *d
	c.Background = cloneString(d.Background)
	c.Text = cloneString(d.Text)
	c.Border = cloneString(d.Border)
	c.BorderWidth = cloneInt(d.BorderWidth)
	return &c
}
