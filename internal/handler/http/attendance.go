package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
)

type AttendanceHandler interface {
	Calendar(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	registry *store.Registry
}

func NewAttendanceHandler(registry *store.Registry) AttendanceHandler {
	return &AttendanceHandlerImpl{registry: registry}
}

// Calendar implements AttendanceHandler. ?view=month|week switches the view and
// ?step=next|prev moves by one period; both refetch the visible range.
func (h *AttendanceHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	ctx := r.Context()
	q := r.URL.Query()

	var err error
	switch {
	case q.Get("view") != "" && attendance.View(q.Get("view")) != set.Attendance.View():
		err = set.Attendance.SetView(ctx, attendance.View(q.Get("view")))
	case q.Get("step") == "next":
		err = set.Attendance.Next(ctx)
	case q.Get("step") == "prev":
		err = set.Attendance.Prev(ctx)
	default:
		err = set.Attendance.FetchRange(ctx)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]any{
		"view":         set.Attendance.View(),
		"current_date": set.Attendance.CurrentDate().Format(attendance.DateLayout),
		"label":        set.Attendance.MonthLabel(),
		"days":         set.Attendance.CalendarDays(),
	})
}
