package domain

import (
	"strings"
	"time"
)

// Label maps one of the host's native palette colors to a user-chosen
// display string, shown next to the swatch in the host's own color menu.
// Labels are independent of overrides and never feed resolution.
type Label struct {
	// Hex is the host-native palette color, lowercased.
	Hex  string `json:"hex" validate:"required,hexcolor"`
	Text string `json:"text" validate:"required,max=64"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewLabel creates a label for a host-native hex. The hex is normalized to
// lowercase so lookups under either casing hit the same record.
func NewLabel(hex, text string) *Label {
	return &Label{
		Hex:       NormalizeHex(hex),
		Text:      text,
		UpdatedAt: time.Now(),
	}
}

// NormalizeHex lowercases a hex color for use as a map or storage key.
func NormalizeHex(hex string) string {
	return strings.ToLower(strings.TrimSpace(hex))
}
