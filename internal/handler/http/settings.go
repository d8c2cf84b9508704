package http

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/settings"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
)

type SettingsHandler interface {
	Permissions(w http.ResponseWriter, r *http.Request)
	SelectEmployee(w http.ResponseWriter, r *http.Request)
	Toggle(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	SearchEmployees(w http.ResponseWriter, r *http.Request)
}

type SettingsHandlerImpl struct {
	registry *store.Registry
}

func NewSettingsHandler(registry *store.Registry) SettingsHandler {
	return &SettingsHandlerImpl{registry: registry}
}

type toggleRequest struct {
	Index int            `json:"index"`
	Field settings.Field `json:"field"`
}

type selectEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
}

func permissionsView(set *store.Set) map[string]any {
	data := map[string]any{
		"permissions": set.Settings.Current(),
		"dirty":       set.Settings.Dirty(),
		"employee":    nil,
	}
	if e, ok := set.Settings.SelectedEmployee(); ok {
		data["employee"] = e
	}
	return data
}

// loadEmployees fills the settings employee list from the lookup list.
func loadEmployees(ctx context.Context, set *store.Set) error {
	if len(set.EmployeeContext.Lookups()) == 0 {
		if _, err := set.EmployeeContext.FetchLookupList(ctx); err != nil {
			return err
		}
	}
	set.Settings.SetEmployees(set.EmployeeContext.Lookups())
	return nil
}

// Permissions implements SettingsHandler.
func (h *SettingsHandlerImpl) Permissions(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	response.Success(w, permissionsView(set))
}

// SelectEmployee switches the edited matrix. An empty ID selects the global defaults.
func (h *SettingsHandlerImpl) SelectEmployee(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	var req selectEmployeeRequest
	if !decodeJSON(w, r, &req, "SelectSettingsEmployee") {
		return
	}
	if req.EmployeeID != "" {
		if err := loadEmployees(r.Context(), set); err != nil {
			response.HandleError(w, err)
			return
		}
	}
	set.Settings.SelectEmployee(req.EmployeeID)
	if _, ok := set.Settings.SelectedEmployee(); req.EmployeeID != "" && !ok {
		set.Settings.SelectEmployee("")
		response.HandleError(w, employee.ErrUnknownEmployee)
		return
	}
	response.Success(w, permissionsView(set))
}

// Toggle implements SettingsHandler.
func (h *SettingsHandlerImpl) Toggle(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	var req toggleRequest
	if !decodeJSON(w, r, &req, "TogglePermission") {
		return
	}
	if err := set.Settings.Toggle(req.Index, req.Field); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, permissionsView(set))
}

// Save implements SettingsHandler.
func (h *SettingsHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	if err := set.Settings.Save(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Changes Saved", permissionsView(set))
}

// SearchEmployees filters the employee list by name with ?q=.
func (h *SettingsHandlerImpl) SearchEmployees(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	if err := loadEmployees(r.Context(), set); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, set.Settings.SearchEmployees(r.URL.Query().Get("q")))
}
