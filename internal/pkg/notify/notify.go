package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
)

const (
	ColorSuccess = "success"
	ColorError   = "error"
	ColorWarning = "warning"
	ColorInfo    = "info"
)

// EventToast is the SSE event name carrying a Toast.
const EventToast = "toast"

// Toast is a transient user-facing notification.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
}

// Notifier delivers toasts to the session found in ctx.
type Notifier interface {
	Add(ctx context.Context, toast Toast)
}

// Error builds the error toast every store raises on failure.
func Error(description string) Toast {
	return Toast{Title: "Error", Description: description, Color: ColorError}
}

// Success builds a success toast.
func Success(description string) Toast {
	return Toast{Title: "Success", Description: description, Color: ColorSuccess}
}

// Observer counts published toasts.
type Observer interface {
	ObserveToast(color string)
}

// HubNotifier logs toasts and pushes them to the session's SSE subscribers.
type HubNotifier struct {
	hub      *sse.Hub
	observer Observer
}

func NewHubNotifier(hub *sse.Hub, observer Observer) *HubNotifier {
	return &HubNotifier{hub: hub, observer: observer}
}

func (n *HubNotifier) Add(ctx context.Context, toast Toast) {
	if n.observer != nil {
		n.observer.ObserveToast(toast.Color)
	}

	sessionID, ok := session.IDFromContext(ctx)
	if !ok {
		slog.Debug("Toast without session dropped", "title", toast.Title)
		return
	}

	delivered := n.hub.Publish(sessionID, sse.Event{Event: EventToast, Data: toast})
	slog.Info("Toast published",
		"title", toast.Title,
		"color", toast.Color,
		"description", toast.Description,
		"delivered", delivered,
	)
}

// Recorder keeps toasts in memory. Used by tests.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Add(_ context.Context, toast Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast)
}

// Toasts returns a copy of the recorded toasts.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Last returns the most recent toast, or the zero Toast.
func (r *Recorder) Last() Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}
	}
	return r.toasts[len(r.toasts)-1]
}
