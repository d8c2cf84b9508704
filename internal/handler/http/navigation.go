package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal-go/internal/guard"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
)

const keepaliveInterval = 30 * time.Second

type NavigationHandler interface {
	Navigate(w http.ResponseWriter, r *http.Request)
	Nav(w http.ResponseWriter, r *http.Request)
	Loading(w http.ResponseWriter, r *http.Request)
	Events(w http.ResponseWriter, r *http.Request)
}

type NavigationHandlerImpl struct {
	navigator *middleware.Navigator
	registry  *store.Registry
	hub       *sse.Hub
}

func NewNavigationHandler(navigator *middleware.Navigator, registry *store.Registry, hub *sse.Hub) NavigationHandler {
	return &NavigationHandlerImpl{navigator: navigator, registry: registry, hub: hub}
}

// Navigate evaluates the guard for the page in ?to=.
func (h *NavigationHandlerImpl) Navigate(w http.ResponseWriter, r *http.Request) {
	to := r.URL.Query().Get("to")
	if to == "" {
		response.BadRequest(w, "Query parameter 'to' is required", nil)
		return
	}
	target, err := url.Parse(to)
	if err != nil || target.Path == "" {
		response.BadRequest(w, "Invalid navigation target", nil)
		return
	}

	nav := h.navigator.Navigation(r.Context(), target.Path, target.Query())
	decision := h.navigator.Evaluate(r.Context(), nav)
	response.Success(w, map[string]any{
		"allowed":  decision.IsAllowed(),
		"location": decision.Location,
	})
}

// Nav lists the sidebar entries for the current user.
func (h *NavigationHandlerImpl) Nav(w http.ResponseWriter, r *http.Request) {
	u := h.navigator.CurrentUser(r.Context())
	viewingOther := false
	if set, err := h.registry.FromContext(r.Context()); err == nil {
		viewingOther = set.EmployeeContext.IsViewingOther()
	}
	response.Success(w, guard.Nav(u, viewingOther))
}

// Loading reports whether a page-level fetch of the session is in flight.
func (h *NavigationHandlerImpl) Loading(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	response.Success(w, map[string]bool{"loading": set.Loader.Active()})
}

// Events streams the session's toasts over SSE.
func (h *NavigationHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session.IDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(sessionID)
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
