package domain

import "time"

// DefaultBorderWidth is the border width applied when neither the override
// nor the calendar default specifies one.
const DefaultBorderWidth = 2

// ColorOverride is a user-specified color record for a single event or for a
// whole recurring series. Nil fields mean "not set at this tier"; resolution
// falls through to the calendar default.
type ColorOverride struct {
	Background  *string `json:"background,omitempty" validate:"omitempty,hexcolor"`
	Text        *string `json:"text,omitempty" validate:"omitempty,hexcolor"`
	Border      *string `json:"border,omitempty" validate:"omitempty,hexcolor"`
	BorderWidth *int    `json:"border_width,omitempty" validate:"omitempty,min=0,max=32"`

	// IsRecurring marks records stored under a canonical series key.
	IsRecurring bool `json:"is_recurring"`

	// OverrideDefaults skips the calendar-default tier entirely for this
	// record, so a flat background pick cannot inherit text/border styling.
	OverrideDefaults bool `json:"override_defaults"`

	// UseHostColors means "apply nothing, let the host render its own color".
	// It wins over every other field and over calendar defaults.
	UseHostColors bool `json:"use_host_colors"`

	AppliedAt time.Time `json:"applied_at"`
}

// NewColorOverride creates an empty override stamped with the current time.
func NewColorOverride() *ColorOverride {
	return &ColorOverride{AppliedAt: time.Now()}
}

// IsEmpty reports whether the record carries nothing worth persisting:
// no colors, no flags, and no border width other than the unset default.
func (o *ColorOverride) IsEmpty() bool {
	if o.Background != nil || o.Text != nil || o.Border != nil {
		return false
	}
	if o.UseHostColors {
		return false
	}
	return o.BorderWidth == nil || *o.BorderWidth == DefaultBorderWidth
}

// Clone returns a deep copy. Cached records are cloned before handing them
// to callers so a later write cannot mutate cache state in place.
func (o *ColorOverride) Clone() *ColorOverride {
	if o == nil {
		return nil
	}
	c := *o
	c.Background = cloneString(o.Background)
	c.Text = cloneString(o.Text)
	c.Border = cloneString(o.Border)
	c.BorderWidth = cloneInt(o.BorderWidth)
	return &c
}

// ResolvedColors is the effective styling for one event after the merge.
// A nil *ResolvedColors from the resolver means "apply nothing".
type ResolvedColors struct {
	Background  *string `json:"background,omitempty"`
	Text        *string `json:"text,omitempty"`
	Border      *string `json:"border,omitempty"`
	BorderWidth int     `json:"border_width"`
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

// Str is a convenience for building optional color fields in literals.
func Str(s string) *string { return &s }

// Int is a convenience for building optional width fields in literals.
func Int(n int) *int { return &n }
