package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type HolidayHandlerImpl struct {
	registry *store.Registry
}

func NewHolidayHandler(registry *store.Registry) HolidayHandler {
	return &HolidayHandlerImpl{registry: registry}
}

// List implements HolidayHandler. Supports ?filter=all|public|restricted and ?search=.
func (h *HolidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	if _, err := set.Holiday.FetchHolidays(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = holiday.FilterAll
	}
	data := map[string]any{
		"holidays": set.Holiday.Filtered(filter, r.URL.Query().Get("search")),
		"next":     nil,
	}
	if next, ok := set.Holiday.Next(); ok {
		data["next"] = next
	}
	response.Success(w, data)
}
