package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/inventory"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
)

type AuditHandler interface {
	MyDevices(w http.ResponseWriter, r *http.Request)
	Device(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
}

type AuditHandlerImpl struct {
	registry *store.Registry
}

func NewAuditHandler(registry *store.Registry) AuditHandler {
	return &AuditHandlerImpl{registry: registry}
}

// MyDevices lists the devices assigned to the user with their audit state.
func (h *AuditHandlerImpl) MyDevices(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	status, err := set.Audit.FetchStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	devices := set.Audit.LoadDeviceList(r.Context())

	response.Success(w, map[string]any{
		"status":      status,
		"devices":     devices,
		"unaudited":   set.Audit.Unaudited(),
		"all_audited": set.Audit.AllAudited(),
	})
}

// Device implements AuditHandler.
func (h *AuditHandlerImpl) Device(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	id, ok := deviceID(w, r)
	if !ok {
		return
	}
	view, err := set.Audit.FetchDeviceDetails(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{
		"device":  view,
		"audited": set.Audit.IsDeviceAudited(id),
	})
}

// Submit records the user's audit of one device.
func (h *AuditHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	id, ok := deviceID(w, r)
	if !ok {
		return
	}
	var sub inventory.AuditSubmission
	if !decodeJSON(w, r, &sub, "SubmitAudit") {
		return
	}
	if err := sub.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	if !set.Audit.Submit(r.Context(), id, sub) {
		response.BadGateway(w, set.Audit.Error())
		return
	}
	if _, err := set.Audit.FetchStatus(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, inventory.AuditSubmittedText, map[string]any{
		"all_audited": set.Audit.AllAudited(),
	})
}
