// Package notify fans storage change events out to subscribers. All engine
// work happens on one goroutine, so delivery is synchronous and in
// subscription order; the mutex only guards subscription itself.
package notify

import (
	"log/slog"
	"sync"

	"github.com/huecal/huecal-engine/internal/store"
)

// Hub implements store.Emitter and relays each event to every subscriber.
type Hub struct {
	mu          sync.RWMutex
	subscribers []func(store.Event)
	logger      *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{logger: logger}
}

// Subscribe registers a handler for all future events. Handlers must not
// block; they run inline with the mutation that produced the event.
func (h *Hub) Subscribe(fn func(store.Event)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers = append(h.subscribers, fn)
}

// Emit delivers an event to every subscriber. A panicking subscriber is
// logged and skipped; a change notification must never take down the write
// that produced it.
func (h *Hub) Emit(event store.Event) {
	h.mu.RLock()
	subs := h.subscribers
	h.mu.RUnlock()

	for _, fn := range subs {
		h.deliver(fn, event)
	}
}

func (h *Hub) deliver(fn func(store.Event), event store.Event) {
	defer func() {
		if r := recover(); r != nil && h.logger != nil {
			h.logger.Error("change subscriber panicked",
				"event_type", string(event.Type),
				"panic", r,
			)
		}
	}()
	fn(event)
}
