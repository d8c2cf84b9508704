package inventory

import (
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/inventory"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/storetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryBody() map[string]any {
	return map[string]any{
		"error": 0,
		"data": map[string]any{
			"total_devices":    12,
			"total_assigned":   9,
			"total_unassigned": 3,
			"device_types": []map[string]any{
				{"id": 1, "name": "Laptop", "total": 8, "working": 7, "assigned": 6, "unassigned": 2},
				{"id": 2, "name": "Monitor", "total": 4, "working": 4, "assigned": 3, "unassigned": 1},
			},
		},
	}
}

func TestStore_FetchSummary(t *testing.T) {
	b := storetest.New(t)
	b.JSON("GET /api/inventory/summary/", summaryBody())

	s := New(b.Deps)
	assert.Equal(t, 0, s.TotalDevices())
	assert.Empty(t, s.Categories())

	sum, err := s.FetchSummary(storetest.Ctx())
	require.NoError(t, err)
	require.NotNil(t, sum)
	assert.Equal(t, 12, s.TotalDevices())

	cats := s.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, inventory.Category{ID: "2", Name: "Monitor", Total: 4, Working: 4, Unassigned: 1, Icon: "Monitor"}, cats[1])
}

func TestStore_FetchDevicesByType(t *testing.T) {
	b := storetest.New(t)
	b.JSON("GET /api/inventory/device-types/{id}/devices/", map[string]any{
		"error": 0,
		"data": []map[string]any{
			{"id": 1, "device_type": 1, "device_type_name": "Laptop", "model_name": "ThinkPad", "serial_number": "SN1", "status": "working", "employee_name": "Ada"},
			{"id": 2, "device_type": 1, "device_type_name": "Laptop", "serial_number": "SN2"},
		},
	})

	s := New(b.Deps)
	devices, err := s.FetchDevicesByType(storetest.Ctx(), 1)
	require.NoError(t, err)
	assert.Len(t, devices, 2)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "ThinkPad", items[0].Name)
	assert.Equal(t, "Ada", items[0].AssignedTo)
	assert.Equal(t, "Laptop", items[1].Name)
	assert.Equal(t, inventory.StatusUnassigned, items[1].Status)
	assert.False(t, s.LoadingSections()["devices"])
}

func TestStore_FetchUnassigned(t *testing.T) {
	b := storetest.New(t)
	var query atomic.Value
	b.Mux.HandleFunc("GET /api/inventory/devices/unassigned/", func(w http.ResponseWriter, r *http.Request) {
		query.Store(r.URL.RawQuery)
		storetest.WriteJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{
				{"id": 1, "device_type": 2, "serial_number": "SN1"},
				{"id": 2, "device_type": 3, "serial_number": "SN2", "is_active": false},
			},
		})
	})

	s := New(b.Deps)
	all, err := s.FetchUnassigned(storetest.Ctx(), "", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "search=", query.Load())
	assert.Equal(t, inventory.StatusUnassigned, all[0].Status)
	assert.True(t, *all[0].IsActive)
	assert.False(t, *all[1].IsActive)

	filtered, err := s.FetchUnassigned(storetest.Ctx(), "sn", 2)
	require.NoError(t, err)
	assert.Equal(t, "category=2&search=sn", query.Load())
	require.Len(t, filtered, 1)
	assert.Equal(t, 1, filtered[0].ID)
	assert.Len(t, s.Devices(), 1)
}

func TestStore_FetchDetail(t *testing.T) {
	b := storetest.New(t)
	b.JSON("GET /api/inventory/devices/5/", map[string]any{
		"id":                 5,
		"model_name":         "UltraSharp",
		"device_type_detail": map[string]any{"id": 2, "name": "Monitor"},
		"purchase_price":     "300.00",
	})
	b.Fail("GET /api/inventory/devices/6/", http.StatusNotFound, map[string]any{"detail": "Not found."})

	s := New(b.Deps)
	d, err := s.FetchDetail(storetest.Ctx(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, d.ID)
	item := s.SelectedItem()
	require.NotNil(t, item)
	assert.Equal(t, "$300.00", item.Price)

	_, err = s.FetchDetail(storetest.Ctx(), 6)
	require.Error(t, err)
	assert.Nil(t, s.Detail())
	assert.Nil(t, s.SelectedItem())
	assert.Equal(t, "Not found.", s.Error())
}

func TestStore_Unassign(t *testing.T) {
	b := storetest.New(t)
	b.JSON("POST /api/inventory/devices/5/unassign/", map[string]any{
		"error": 0,
		"data":  map[string]any{"message": "Device unassigned"},
	})

	s := New(b.Deps)
	msg, err := s.Unassign(storetest.Ctx(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Device unassigned", msg)
	assert.Equal(t, notify.Success("Device unassigned"), b.Notifier.Last())
}

func TestStore_FetchComments(t *testing.T) {
	b := storetest.New(t)
	b.JSON("GET /api/inventory/devices/5/comments/", map[string]any{
		"error": 0,
		"data": []map[string]any{
			{"id": 1, "employee_name": "Ada", "comment": "Scratched lid", "formatted_date": "02 Dec 2025"},
		},
	})
	b.Fail("GET /api/inventory/devices/6/comments/", http.StatusInternalServerError, nil)

	s := New(b.Deps)
	assert.Empty(t, s.FetchComments(storetest.Ctx(), 0))

	comments := s.FetchComments(storetest.Ctx(), 5)
	require.Len(t, comments, 1)
	assert.Equal(t, inventory.Comment{ID: "1", Author: "Ada", Text: "Scratched lid", Date: "02 Dec 2025"}, comments[0])

	assert.Empty(t, s.FetchComments(storetest.Ctx(), 6))
	assert.Empty(t, s.Comments())
	assert.Empty(t, b.Notifier.Toasts())
}

func TestStore_CreateUpdateDelete(t *testing.T) {
	b := storetest.New(t)
	var summaries atomic.Int32
	b.Mux.HandleFunc("GET /api/inventory/summary/", func(w http.ResponseWriter, r *http.Request) {
		summaries.Add(1)
		storetest.WriteJSON(w, http.StatusOK, summaryBody())
	})
	var created, updated atomic.Value
	b.Mux.HandleFunc("POST /api/inventory/devices/{$}", func(w http.ResponseWriter, r *http.Request) {
		created.Store(storetest.DecodeBody(r))
		storetest.WriteJSON(w, http.StatusCreated, map[string]any{"id": 9, "serial_number": "SN9", "model_name": "X1"})
	})
	b.Mux.HandleFunc("PUT /api/inventory/devices/{id}/", func(w http.ResponseWriter, r *http.Request) {
		updated.Store(storetest.DecodeBody(r))
		storetest.WriteJSON(w, http.StatusOK, map[string]any{"id": 1, "serial_number": "SN1-B", "model_name": "X1 Carbon", "status": "repair"})
	})
	b.Mux.HandleFunc("DELETE /api/inventory/devices/{id}/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	b.JSON("GET /api/inventory/device-types/{id}/devices/", map[string]any{
		"error": 0,
		"data": []map[string]any{
			{"id": 1, "device_type": 1, "serial_number": "SN1", "model_name": "X1"},
			{"id": 2, "device_type": 1, "serial_number": "SN2"},
		},
	})

	s := New(b.Deps)
	price := decimal.RequireFromString("1499.99")
	dev, err := s.Create(storetest.Ctx(), inventory.CreateRequest{
		DeviceType:    1,
		SerialNumber:  "SN9",
		ModelName:     "X1",
		PurchasePrice: &price,
		IsActive:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, dev.ID)
	body := created.Load().(map[string]any)
	assert.Equal(t, "1499.99", body["purchase_price"])
	assert.Nil(t, body["employee"])
	assert.Equal(t, "", body["notes"])
	assert.NotContains(t, body, "photo")
	assert.Equal(t, int32(1), summaries.Load())

	_, err = s.FetchDevicesByType(storetest.Ctx(), 1)
	require.NoError(t, err)

	name := "X1 Carbon"
	_, err = s.Update(storetest.Ctx(), 1, inventory.UpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "X1 Carbon", updated.Load().(map[string]any)["model_name"])
	assert.Equal(t, "SN1-B", s.Devices()[0].SerialNumber)
	assert.Equal(t, "repair", s.Devices()[0].Status)
	assert.Equal(t, 1, s.Detail().ID)

	require.NoError(t, s.Delete(storetest.Ctx(), 1))
	assert.Len(t, s.Devices(), 1)
	assert.Nil(t, s.Detail())
	assert.Equal(t, int32(2), summaries.Load())
}

func TestStore_CreateInvalid(t *testing.T) {
	b := storetest.New(t)
	s := New(b.Deps)

	_, err := s.Create(storetest.Ctx(), inventory.CreateRequest{})
	require.Error(t, err)
	assert.Contains(t, s.Error(), "Serial number is required")
	assert.Equal(t, notify.ColorError, b.Notifier.Last().Color)
}

func TestStore_DeleteFailure(t *testing.T) {
	b := storetest.New(t)
	b.Fail("DELETE /api/inventory/devices/{id}/", http.StatusForbidden, map[string]any{"message": "Not allowed"})

	s := New(b.Deps)
	require.Error(t, s.Delete(storetest.Ctx(), 1))
	assert.Equal(t, "Not allowed", s.Error())
	assert.Empty(t, b.Notifier.Toasts())
}
