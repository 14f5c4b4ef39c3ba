package services

import (
	"sync"
	"time"
)

// Change actions broadcast to connected clients.
const (
	ActionAdd       = "add"
	ActionUpdate    = "update"
	ActionRemove    = "remove"
	ActionSetActive = "setActive"
	ActionComment   = "comment"
)

// ChangeEvent describes one mutation of the design system: which category
// changed, what happened and the affected payload.
type ChangeEvent struct {
	Category string      `json:"category"` // colorScheme, typography, spacing, borderRadius, shadow, animation, component, image, feedback, styleGuide
	Action   string      `json:"action"`   // add, update, remove, setActive, comment
	Payload  interface{} `json:"payload,omitempty"`
	Actor    string      `json:"actor,omitempty"`
	At       time.Time   `json:"at"`
}

// EventHub fans change events out to SSE subscribers and, when configured,
// forwards them to an external notifier (webhook queue).
type EventHub struct {
	clients   map[string]chan ChangeEvent
	mu        sync.RWMutex
	forwarder func(ChangeEvent)
}

// NewEventHub creates a new hub instance.
func NewEventHub() *EventHub {
	return &EventHub{
		clients: make(map[string]chan ChangeEvent),
	}
}

// SetForwarder installs a hook invoked for every published event, used to
// bridge events into the notify queue. Must be set before serving traffic.
func (h *EventHub) SetForwarder(fn func(ChangeEvent)) {
	h.forwarder = fn
}

// Subscribe registers a new client and returns a channel for receiving events.
func (h *EventHub) Subscribe(clientID string) <-chan ChangeEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Buffered so a slow client cannot block publishers
	ch := make(chan ChangeEvent, 100)
	h.clients[clientID] = ch
	return ch
}

// Unsubscribe removes a client from the hub.
func (h *EventHub) Unsubscribe(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[clientID]; ok {
		close(ch)
		delete(h.clients, clientID)
	}
}

// Publish broadcasts an event to all connected clients.
func (h *EventHub) Publish(event ChangeEvent) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	h.mu.RLock()
	for _, ch := range h.clients {
		// Non-blocking send - drop event if client buffer is full
		select {
		case ch <- event:
		default:
		}
	}
	h.mu.RUnlock()

	if h.forwarder != nil {
		h.forwarder(event)
	}
}

// ClientCount returns the number of connected clients.
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Global hub instance
var globalEventHub *EventHub
var eventHubOnce sync.Once

// GetEventHub returns the global change-event hub singleton.
func GetEventHub() *EventHub {
	eventHubOnce.Do(func() {
		globalEventHub = NewEventHub()
	})
	return globalEventHub
}

// PublishChange is a convenience wrapper for publishing on the global hub.
func PublishChange(category, action string, payload interface{}, actor string) {
	GetEventHub().Publish(ChangeEvent{
		Category: category,
		Action:   action,
		Payload:  payload,
		Actor:    actor,
	})
}
