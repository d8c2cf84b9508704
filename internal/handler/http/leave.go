package http

import (
	"bytes"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-portal-go/internal/guard"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type LeaveHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Apply(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)

	Pending(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)

	AllBalances(w http.ResponseWriter, r *http.Request)
	ExportBalances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	registry *store.Registry
}

func NewLeaveHandler(registry *store.Registry) LeaveHandler {
	return &LeaveHandlerImpl{registry: registry}
}

type statusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// List implements LeaveHandler. ?employeeId= selects whose leaves are shown.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	userID := queryInt(r, guard.EmployeeQueryKey)

	requests, err := set.Leave.FetchLeaves(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	balances, err := set.Leave.FetchBalances(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]any{
		"requests": requests,
		"balances": balances,
	})
}

// Apply implements LeaveHandler.
func (h *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	var req leave.ApplyRequest
	if !decodeJSON(w, r, &req, "ApplyLeave") {
		return
	}
	if err := set.Leave.Apply(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted successfully", map[string]any{
		"requests": set.Leave.Requests(),
		"balances": set.Leave.Balances(),
	})
}

// UpdateStatus changes one of the user's own requests, e.g. a cancellation.
func (h *LeaveHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	id, ok := intParam(w, r, "id", "Leave request ID")
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req, "UpdateLeaveStatus") {
		return
	}
	if req.Status == "" {
		response.BadRequest(w, "Status is required", nil)
		return
	}
	if err := set.Leave.Update(r.Context(), id, req.Status); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, set.Leave.Requests())
}

// Pending implements LeaveHandler.
func (h *LeaveHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	pending, err := set.Leave.FetchPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, pending)
}

// Review approves or rejects a request from the approval queue.
func (h *LeaveHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	id, ok := intParam(w, r, "id", "Leave request ID")
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req, "ReviewLeave") {
		return
	}
	if req.Status != leave.StatusApproved && req.Status != leave.StatusRejected {
		response.BadRequest(w, "Status must be Approved or Rejected", nil)
		return
	}
	if err := set.Leave.UpdateWithReason(r.Context(), id, req.Status, req.Reason); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, set.Leave.Pending())
}

// AllBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) AllBalances(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	balances, err := set.Leave.FetchAllEmployeeBalances(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

// ExportBalances downloads every employee's balances as a spreadsheet.
func (h *LeaveHandlerImpl) ExportBalances(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	if _, err := set.Leave.FetchAllEmployeeBalances(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := set.Leave.ExportBalances(&buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := "leave-balances-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(buf.Bytes())
}
