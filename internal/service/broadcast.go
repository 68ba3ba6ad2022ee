package service

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/huecal/huecal-engine/internal/domain"
	"github.com/huecal/huecal-engine/internal/eventid"
)

// Element is the minimal surface the broadcaster needs from a rendered
// event chip. Implementations adapt whatever the host environment hands us.
type Element interface {
	// EventID returns the raw event id the element is rendered for.
	EventID() string
	// SetStyle sets one inline style property.
	SetStyle(property, value string)
	// ClearStyle removes a previously set inline style property.
	ClearStyle(property string)
}

// Style properties the broadcaster touches. Everything it sets it also
// knows how to clear, so a nil resolution fully restores host styling.
var styledProperties = []string{
	"background-color",
	"background-image",
	"color",
	"outline",
	"outline-offset",
}

// ApplyOptions tweak how resolved colors are painted onto an element.
type ApplyOptions struct {
	// Stripe, when set, paints the background as a diagonal gradient
	// between the resolved background and this color. Used for events the
	// host renders with a secondary accent.
	Stripe string
}

// Broadcaster paints resolved colors onto rendered elements and fans a
// series edit out to every visible instance of that series.
type Broadcaster struct {
	resolver *Resolver
	logger   *slog.Logger
}

// NewBroadcaster creates a broadcaster backed by the given resolver.
func NewBroadcaster(resolver *Resolver, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{resolver: resolver, logger: logger}
}

// FindSeriesInstances filters elements down to those rendering the same
// series as baseID. Invalid ids never match.
func FindSeriesInstances(elements []Element, baseID string) []Element {
	var instances []Element
	for _, el := range elements {
		ident := eventid.Decode(el.EventID())
		if ident.Valid() && ident.BaseID == baseID {
			instances = append(instances, el)
		}
	}
	return instances
}

// Broadcast repaints every element whose event belongs to the series of
// rawID, resolving each instance individually. Called after a series-wide
// write so already-rendered chips update without waiting for a host
// re-render.
func (b *Broadcaster) Broadcast(elements []Element, rawID string) {
	ident := eventid.Decode(rawID)
	if !ident.Valid() {
		b.Repaint(elements, rawID)
		return
	}
	for _, el := range FindSeriesInstances(elements, ident.BaseID) {
		b.paint(el, b.resolver.ResolveEvent(el.EventID()), ApplyOptions{})
	}
}

// Repaint repaints only the elements rendering exactly rawID.
func (b *Broadcaster) Repaint(elements []Element, rawID string) {
	for _, el := range elements {
		if el.EventID() == rawID {
			b.paint(el, b.resolver.ResolveEvent(rawID), ApplyOptions{})
		}
	}
}

// Apply paints resolved colors onto a single element. A nil resolution
// clears everything previously set so the host's own styling shows.
func (b *Broadcaster) Apply(el Element, resolved *domain.ResolvedColors, opts ApplyOptions) {
	b.paint(el, resolved, opts)
}

func (b *Broadcaster) paint(el Element, resolved *domain.ResolvedColors, opts ApplyOptions) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("paint panicked", "event_id", el.EventID(), "panic", rec)
		}
	}()

	if resolved == nil {
		for _, prop := range styledProperties {
			el.ClearStyle(prop)
		}
		return
	}

	if resolved.Background != nil {
		if opts.Stripe != "" {
			el.SetStyle("background-image", stripeGradient(*resolved.Background, opts.Stripe))
			el.ClearStyle("background-color")
		} else {
			el.SetStyle("background-color", *resolved.Background)
			el.ClearStyle("background-image")
		}
	} else {
		el.ClearStyle("background-color")
		el.ClearStyle("background-image")
	}

	switch {
	case resolved.Text != nil:
		el.SetStyle("color", *resolved.Text)
	case resolved.Background != nil:
		el.SetStyle("color", ContrastText(*resolved.Background))
	default:
		el.ClearStyle("color")
	}

	if resolved.Border != nil && resolved.BorderWidth > 0 {
		el.SetStyle("outline", fmt.Sprintf("%dpx solid %s", resolved.BorderWidth, *resolved.Border))
		el.SetStyle("outline-offset", OutlineOffset(resolved.BorderWidth))
	} else {
		el.ClearStyle("outline")
		el.ClearStyle("outline-offset")
	}
}

// ContrastText picks black or white text for a background color using the
// perceived-luminance formula (0.299R + 0.587G + 0.114B) / 255; backgrounds
// above 0.6 get black. Unparseable input gets white, matching the dark
// palette most custom colors come from.
func ContrastText(background string) string {
	r, g, bl, ok := parseHex(background)
	if !ok {
		return "#ffffff"
	}
	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)) / 255
	if luminance > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

// OutlineOffset draws the outline inset into the chip rather than outside
// it, scaled to the border width. The offset is -width*0.3 px rounded to a
// tenth.
func OutlineOffset(borderWidth int) string {
	offset := math.Round(float64(borderWidth)*0.3*10) / 10
	return fmt.Sprintf("-%spx", strconv.FormatFloat(offset, 'f', -1, 64))
}

func stripeGradient(background, stripe string) string {
	return fmt.Sprintf("linear-gradient(45deg, %s 50%%, %s 50%%)", background, stripe)
}

func parseHex(color string) (r, g, b uint8, ok bool) {
	hex := strings.TrimPrefix(strings.TrimSpace(color), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(val >> 16), uint8(val >> 8 & 0xff), uint8(val & 0xff), true
}
