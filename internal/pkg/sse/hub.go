package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	SessionID string
	Event     string
	Data      interface{}
}

// Hub manages SSE subscribers per portal session
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for a session and returns the event channel and cleanup function
func (h *Hub) Subscribe(sessionID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[sessionID] == nil {
		h.subscribers[sessionID] = make(map[chan Event]struct{})
	}
	h.subscribers[sessionID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if subs, ok := h.subscribers[sessionID]; ok {
				if _, ok := subs[ch]; ok {
					delete(subs, ch)
					close(ch)
				}
				if len(subs) == 0 {
					delete(h.subscribers, sessionID)
				}
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a session.
// It reports whether at least one subscriber accepted the event.
func (h *Hub) Publish(sessionID string, event Event) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.SessionID = sessionID
	delivered := false
	for ch := range h.subscribers[sessionID] {
		select {
		case ch <- event:
			delivered = true
		default:
			// Skip if channel is full (non-blocking to prevent deadlock)
		}
	}
	return delivered
}

// Close drops every subscriber of a session, ending their streams.
func (h *Hub) Close(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers[sessionID] {
		close(ch)
	}
	delete(h.subscribers, sessionID)
}

// CloseAll drops every subscriber of every session.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sessionID, subs := range h.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(h.subscribers, sessionID)
	}
}

// SubscriberCount returns the number of active subscribers for a session
func (h *Hub) SubscriberCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[sessionID])
}

// TotalSubscribers returns the total number of active subscribers across all sessions
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
