package registry

import (
	"sync"

	"github.com/oxleaf/loadout/internal/logging"
)

// Event names emitted by the registry.
const (
	EventExtensionLoaded  = "extension_loaded"
	EventExtensionRemoved = "extension_removed"
	EventAddonEnabled     = "addon_enabled"
	EventAddonDisabled    = "addon_disabled"
	EventThemeChanged     = "theme_changed"
)

// Event carries a registry state change to listeners.
type Event struct {
	Name string         `json:"event"`
	Data map[string]any `json:"data,omitempty"`
}

// Listener handles a registry event. Listeners run synchronously in emit
// order; they must not block.
type Listener func(Event)

type namedListener struct {
	name string
	fn   Listener
}

// Events fans registry state changes out to subscribers (the gateway's
// WebSocket feed, primarily).
type Events struct {
	mu        sync.RWMutex
	listeners map[string][]namedListener
	log       *logging.Logger
}

// NewEvents creates an event fan-out.
func NewEvents(log *logging.Logger) *Events {
	return &Events{
		listeners: make(map[string][]namedListener),
		log:       log.Sub("events"),
	}
}

// On registers a listener for the given event. The name identifies the
// listener for removal and debugging.
func (e *Events) On(event, name string, fn Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[event] = append(e.listeners[event], namedListener{name: name, fn: fn})
	e.log.Debug().Str("event", event).Str("listener", name).Msg("listener registered")
}

// Off removes all listeners with the given name from the event.
func (e *Events) Off(event, name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.listeners[event][:0]
	for _, l := range e.listeners[event] {
		if l.name != name {
			kept = append(kept, l)
		}
	}
	e.listeners[event] = kept
}

// Emit dispatches an event to all its listeners in registration order.
func (e *Events) Emit(event string, data map[string]any) {
	e.mu.RLock()
	listeners := make([]namedListener, len(e.listeners[event]))
	copy(listeners, e.listeners[event])
	e.mu.RUnlock()

	for _, l := range listeners {
		l.fn(Event{Name: event, Data: data})
	}
}

// Count returns the number of listeners registered for an event.
func (e *Events) Count(event string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[event])
}
