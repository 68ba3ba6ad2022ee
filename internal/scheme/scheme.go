// Package scheme maps between the host's two encodings of its native event
// palette. The host ships the same 11 colors under a "modern" and a "classic"
// hex set depending on which theme the account renders with; a label saved
// against one encoding must still be found under the other.
package scheme

import "github.com/huecal/huecal-engine/internal/domain"

// modernToClassic pins the host's palette pairs by position in its picker.
// Overrides never use these values; custom colors have no scheme counterpart.
var modernToClassic = map[string]string{
	"#7986cb": "#a4bdfc", // lavender
	"#33b679": "#7ae7bf", // sage
	"#8e24aa": "#dbadff", // grape
	"#e67c73": "#ff887c", // flamingo
	"#f6bf26": "#fbd75b", // banana
	"#f4511e": "#ffb878", // tangerine
	"#039be5": "#46d6db", // peacock
	"#616161": "#e1e1e1", // graphite
	"#3f51b5": "#5484ed", // blueberry
	"#0b8043": "#51b749", // basil
	"#d50000": "#dc2127", // tomato
}

// both is the merged bidirectional table, built once at init.
var both = func() map[string]string {
	m := make(map[string]string, len(modernToClassic)*2)
	for modern, classic := range modernToClassic {
		m[modern] = classic
		m[classic] = modern
	}
	return m
}()

// Equivalent returns the same palette color under the other scheme encoding.
// The lookup is case-insensitive. ok is false for colors outside the host's
// native palette, i.e. any user custom color.
func Equivalent(hex string) (string, bool) {
	out, ok := both[domain.NormalizeHex(hex)]
	return out, ok
}

// IsNative reports whether hex is one of the host's own palette colors under
// either encoding.
func IsNative(hex string) bool {
	_, ok := both[domain.NormalizeHex(hex)]
	return ok
}
