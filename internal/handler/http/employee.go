package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
)

type EmployeeHandler interface {
	Profile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	Teams(w http.ResponseWriter, r *http.Request)
	Context(w http.ResponseWriter, r *http.Request)
	SelectContext(w http.ResponseWriter, r *http.Request)
	ClearContext(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	registry *store.Registry
}

func NewEmployeeHandler(registry *store.Registry) EmployeeHandler {
	return &EmployeeHandlerImpl{registry: registry}
}

type selectContextRequest struct {
	EmployeeID int `json:"employee_id"`
}

// Profile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Profile(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	e, err := set.Employee.FetchMe(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]any{
		"employee":    e,
		"department":  set.Employee.DepartmentName(),
		"designation": set.Employee.DesignationName(),
		"manager":     set.Employee.ManagerName(),
		"is_active":   set.Employee.IsActive(),
	})
}

// UpdateProfile applies a local patch to the cached profile.
func (h *EmployeeHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	var patch map[string]any
	if !decodeJSON(w, r, &patch, "UpdateProfile") {
		return
	}
	if !set.Employee.Loaded() {
		response.HandleError(w, employee.ErrEmployeeNotLoaded)
		return
	}
	if err := set.Employee.Update(patch); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, set.Employee.Employee())
}

// Teams lists employees and active departments.
func (h *EmployeeHandlerImpl) Teams(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	lookups, err := set.EmployeeContext.FetchLookupList(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if _, err := set.Department.FetchDepartments(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]any{
		"employees":   lookups,
		"departments": set.Department.Options(),
	})
}

// Context returns the employee switcher state.
func (h *EmployeeHandlerImpl) Context(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	if len(set.EmployeeContext.Lookups()) == 0 {
		if _, err := set.EmployeeContext.FetchLookupList(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	active, viewing := set.EmployeeContext.ActiveEmployee()
	data := map[string]any{
		"options":         set.EmployeeContext.Options(),
		"viewing_other":   viewing,
		"active_employee": nil,
	}
	if viewing {
		data["active_employee"] = active
	}
	response.Success(w, data)
}

// SelectContext switches to viewing another employee.
func (h *EmployeeHandlerImpl) SelectContext(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	var req selectContextRequest
	if !decodeJSON(w, r, &req, "SelectContext") {
		return
	}
	if len(set.EmployeeContext.Lookups()) == 0 {
		if _, err := set.EmployeeContext.FetchLookupList(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	set.EmployeeContext.Select(req.EmployeeID)
	active, found := set.EmployeeContext.ActiveEmployee()
	if !found {
		set.EmployeeContext.ClearSelection()
		response.HandleError(w, employee.ErrUnknownEmployee)
		return
	}
	response.Success(w, active)
}

// ClearContext returns to the signed-in user's own view.
func (h *EmployeeHandlerImpl) ClearContext(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	set.EmployeeContext.ClearSelection()
	response.SuccessWithMessage(w, "Employee context cleared", nil)
}
