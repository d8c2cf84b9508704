package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
)

type DashboardHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	registry *store.Registry
}

func NewDashboardHandler(registry *store.Registry) DashboardHandler {
	return &DashboardHandlerImpl{registry: registry}
}

// Summary implements DashboardHandler.
func (h *DashboardHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	if err := set.Dashboard.FetchSummary(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]any{
		"overview":          set.Dashboard.Overview(),
		"upcoming_holidays": set.Dashboard.UpcomingHolidays(),
		"leave_breakdown":   set.Dashboard.LeaveBreakdown(),
		"performance":       set.Dashboard.Performance(),
		"pending_leaves":    set.Leave.PendingCount(r.Context()),
	})
}
