package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/inventory"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
)

type InventoryHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	DevicesByType(w http.ResponseWriter, r *http.Request)
	Unassigned(w http.ResponseWriter, r *http.Request)

	Detail(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Unassign(w http.ResponseWriter, r *http.Request)
	Comments(w http.ResponseWriter, r *http.Request)
}

type InventoryHandlerImpl struct {
	registry *store.Registry
}

func NewInventoryHandler(registry *store.Registry) InventoryHandler {
	return &InventoryHandlerImpl{registry: registry}
}

// Summary implements InventoryHandler.
func (h *InventoryHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	if _, err := set.Inventory.FetchSummary(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{
		"total_devices": set.Inventory.TotalDevices(),
		"categories":    set.Inventory.Categories(),
	})
}

// DevicesByType implements InventoryHandler.
func (h *InventoryHandlerImpl) DevicesByType(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	typeID, ok := intParam(w, r, "typeID", "Device type ID")
	if !ok {
		return
	}
	if _, err := set.Inventory.FetchDevicesByType(r.Context(), typeID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, set.Inventory.Items())
}

// Unassigned implements InventoryHandler. Supports ?search= and ?category=.
func (h *InventoryHandlerImpl) Unassigned(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	if _, err := set.Inventory.FetchUnassigned(r.Context(), r.URL.Query().Get("search"), queryInt(r, "category")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, set.Inventory.Items())
}

func deviceID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := intParam(w, r, "id", "Device ID")
	if !ok {
		return 0, false
	}
	return id, true
}

// Detail implements InventoryHandler.
func (h *InventoryHandlerImpl) Detail(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	id, ok := deviceID(w, r)
	if !ok {
		return
	}
	detail, err := set.Inventory.FetchDetail(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{
		"detail":   detail,
		"item":     set.Inventory.SelectedItem(),
		"comments": set.Inventory.FetchComments(r.Context(), id),
	})
}

// Create implements InventoryHandler.
func (h *InventoryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	var req inventory.CreateRequest
	if !decodeJSON(w, r, &req, "CreateDevice") {
		return
	}
	detail, err := set.Inventory.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Device created successfully", detail)
}

// Update implements InventoryHandler.
func (h *InventoryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	id, ok := deviceID(w, r)
	if !ok {
		return
	}
	var req inventory.UpdateRequest
	if !decodeJSON(w, r, &req, "UpdateDevice") {
		return
	}
	detail, err := set.Inventory.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, detail)
}

// Delete implements InventoryHandler.
func (h *InventoryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	id, ok := deviceID(w, r)
	if !ok {
		return
	}
	if err := set.Inventory.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Device deleted successfully", nil)
}

// Unassign implements InventoryHandler.
func (h *InventoryHandlerImpl) Unassign(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	id, ok := deviceID(w, r)
	if !ok {
		return
	}
	msg, err := set.Inventory.Unassign(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, msg, nil)
}

// Comments implements InventoryHandler.
func (h *InventoryHandlerImpl) Comments(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	id, ok := deviceID(w, r)
	if !ok {
		return
	}
	response.Success(w, set.Inventory.FetchComments(r.Context(), id))
}
