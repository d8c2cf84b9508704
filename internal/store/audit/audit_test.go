package audit

import (
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/inventory"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusBody() map[string]any {
	return map[string]any{
		"data": map[string]any{
			"allItemsAudited": false,
			"devices": []map[string]any{
				{"id": 1, "isAudited": true},
				{"id": 2, "isAudited": false},
				{"id": 3, "isAudited": false},
			},
		},
	}
}

func TestStore_StatusAndDeviceList(t *testing.T) {
	b := storetest.New(t)
	b.JSON("GET /api/inventory/user-audit-status/", statusBody())
	b.JSON("GET /api/inventory/devices/1/", map[string]any{
		"id": 1, "model_name": "EliteBook", "serial_number": "SN1",
		"device_type_detail": map[string]any{"id": 1, "name": "Laptop"},
	})
	b.JSON("GET /api/inventory/devices/2/", map[string]any{"id": 2, "model_name": "UltraSharp", "serial_number": "SN2"})
	b.Fail("GET /api/inventory/devices/3/", http.StatusNotFound, nil)

	s := New(b.Deps)
	assert.True(t, s.AllAudited())
	assert.Empty(t, s.LoadDeviceList(storetest.Ctx()))

	st, err := s.FetchStatus(storetest.Ctx())
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.False(t, s.AllAudited())
	assert.True(t, s.IsDeviceAudited(1))
	assert.False(t, s.IsDeviceAudited(2))

	list := s.LoadDeviceList(storetest.Ctx())
	require.Len(t, list, 2)
	assert.Equal(t, inventory.ListItem{ID: 1, Name: "EliteBook", SerialNumber: "SN1", Category: "Laptop", IsAudited: true}, list[0])
	assert.Equal(t, "Device", list[1].Category)

	unaudited := s.Unaudited()
	require.Len(t, unaudited, 1)
	assert.Equal(t, 2, unaudited[0].ID)
	assert.Empty(t, b.Notifier.Toasts())
}

func TestStore_FetchStatusFailure(t *testing.T) {
	b := storetest.New(t)
	b.Fail("GET /api/inventory/user-audit-status/", http.StatusInternalServerError, nil)

	s := New(b.Deps)
	_, err := s.FetchStatus(storetest.Ctx())
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch audit status", s.Error())
	assert.Nil(t, s.Status())
	assert.True(t, s.AllAudited())
}

func TestStore_FetchDeviceDetailsCached(t *testing.T) {
	b := storetest.New(t)
	var calls atomic.Int32
	b.Mux.HandleFunc("GET /api/inventory/devices/7/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		storetest.WriteJSON(w, http.StatusOK, map[string]any{
			"id": 7, "model_name": "EliteBook", "serial_number": "SN7", "status_display": "Working",
			"employee_detail": map[string]any{"full_name": "Ada", "photo_url": "https://img/ada.png"},
		})
	})
	b.Fail("GET /api/inventory/devices/8/", http.StatusInternalServerError, nil)

	s := New(b.Deps)
	v, err := s.FetchDeviceDetails(storetest.Ctx(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Ada", v.EmployeeName)
	assert.Equal(t, "https://img/ada.png", v.Image)

	_, err = s.FetchDeviceDetails(storetest.Ctx(), 7)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	_, err = s.FetchDeviceDetails(storetest.Ctx(), 8)
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch device 8", s.Error())
	assert.False(t, s.DetailLoading())
}

func TestStore_Submit(t *testing.T) {
	b := storetest.New(t)
	var body atomic.Value
	b.Mux.HandleFunc("POST /api/inventory/devices/{id}/submit-audit/", func(w http.ResponseWriter, r *http.Request) {
		body.Store(storetest.DecodeBody(r))
		storetest.WriteJSON(w, http.StatusOK, map[string]any{"error": 0})
	})

	s := New(b.Deps)
	ok := s.Submit(storetest.Ctx(), 2, inventory.AuditSubmission{Condition: "good", Status: "working", Comment: "All fine"})
	require.True(t, ok)
	assert.Equal(t, map[string]any{"condition": "good", "status": "working", "comment": "All fine"}, body.Load())
	assert.Equal(t, notify.Success("Device audit submitted successfully"), b.Notifier.Last())

	assert.False(t, s.Submit(storetest.Ctx(), 2, inventory.AuditSubmission{}))
	assert.Equal(t, notify.ColorError, b.Notifier.Last().Color)
	assert.False(t, s.Loading())
}
