package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
	"github.com/go-chi/chi/v5"
)

// sessionSet returns the stores of the request's session, answering 401 when there is none.
func sessionSet(w http.ResponseWriter, r *http.Request, registry *store.Registry) (*store.Set, bool) {
	set, err := registry.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return nil, false
	}
	return set, true
}

// decodeJSON reads the request body into v, answering 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, op string) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// intParam parses a positive integer URL parameter.
func intParam(w http.ResponseWriter, r *http.Request, name, label string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		response.BadRequest(w, label+" is required", nil)
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter, 0 when absent or invalid.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
