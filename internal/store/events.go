package store

import "time"

// EventType identifies what changed in storage.
type EventType string

const (
	// EventOverrideUpdated fires when an event or series override is written.
	EventOverrideUpdated EventType = "override.updated"
	// EventOverrideDeleted fires when an override record is removed.
	EventOverrideDeleted EventType = "override.deleted"

	// EventCalendarDefaultUpdated fires when a calendar default is written.
	EventCalendarDefaultUpdated EventType = "calendar_default.updated"
	// EventCalendarDefaultDeleted fires when a calendar default is removed.
	EventCalendarDefaultDeleted EventType = "calendar_default.deleted"

	// EventLabelUpdated fires when a palette label is written or removed.
	EventLabelUpdated EventType = "label.updated"

	// EventCategoryUpdated fires when a category or template changes.
	EventCategoryUpdated EventType = "category.updated"
)

// Event describes one storage mutation. Key is the record key within its
// namespace (raw event id, calendar id, hex, or category/template id).
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Key       string    `json:"key"`
}

// Emitter receives change events after every successful mutation. The
// feature controller subscribes through it to refresh its caches; the
// excluded UI layer relays the same events to other extension surfaces.
type Emitter interface {
	Emit(event Event)
}

// NoopEmitter is a no-op implementation of Emitter for testing.
type NoopEmitter struct{}

// Emit implements Emitter.Emit as a no-op.
func (NoopEmitter) Emit(Event) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() Emitter {
	return NoopEmitter{}
}

func (s *Store) emit(eventType EventType, key string) {
	if s.emitter == nil {
		return
	}
	s.emitter.Emit(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Key:       key,
	})
}
