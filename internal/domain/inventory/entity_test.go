package inventory

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestIconName(t *testing.T) {
	tests := map[string]string{
		"Mobile Phone":    "Smartphone",
		"Laptop":          "Laptop",
		"Wireless Mouse":  "MousePointer2",
		"Power Bank":      "Zap",
		"Display Screen":  "Monitor",
		"Webcam":          "Camera",
		"Air Conditioner": "AirVent",
		"LED Light":       "Lightbulb",
		"Wifi Router":     "Wifi",
		"Studio Audio":    "Headphones",
		"Desk":            "CircleDashed",
	}
	for name, want := range tests {
		assert.Equal(t, want, IconName(name), name)
	}
}

func TestDeviceTypeSummary_Category(t *testing.T) {
	c := DeviceTypeSummary{ID: 4, Name: "Laptop", Total: 10, Working: 8, Unassigned: 2}.Category()
	assert.Equal(t, Category{ID: "4", Name: "Laptop", Total: 10, Working: 8, Unassigned: 2, Icon: "Laptop"}, c)
}

func TestNormalizeUnassigned(t *testing.T) {
	var raw Device
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"serial_number":"SN1","employee_name":"Ada","purchase_date":""}`), &raw))

	d := NormalizeUnassigned(raw)
	assert.Equal(t, 0, d.DeviceType)
	assert.Equal(t, StatusUnassigned, d.Status)
	assert.Equal(t, StatusDisplayUnassigned, d.StatusDisplay)
	assert.Nil(t, d.EmployeeName)
	assert.Nil(t, d.PurchaseDate)
	require.NotNil(t, d.IsActive)
	assert.True(t, *d.IsActive)

	inactive := NormalizeUnassigned(Device{ID: 4, IsActive: ptr(false), Status: StatusRepair})
	assert.False(t, *inactive.IsActive)
	assert.Equal(t, StatusRepair, inactive.Status)
}

func TestNormalizeUnassignedIdempotent(t *testing.T) {
	inputs := []Device{
		{ID: 1},
		{ID: 2, Status: StatusWorking, PurchaseDate: ptr("2024-01-01"), EmployeeName: ptr("Bob")},
		{ID: 3, IsActive: ptr(false), WarrantyExpiry: ptr("")},
	}
	for _, in := range inputs {
		once := NormalizeUnassigned(in)
		assert.Equal(t, once, NormalizeUnassigned(once))
	}
}

func TestDevice_Item(t *testing.T) {
	item := Device{ID: 9, DeviceTypeName: "Laptop", SerialNumber: "SN9", EmployeeName: ptr("Ada")}.Item()
	assert.Equal(t, "9", item.ID)
	assert.Equal(t, "Laptop", item.Name)
	assert.Equal(t, NotSet, item.PurchaseDate)
	assert.Equal(t, NotSet, item.Price)
	assert.Equal(t, StatusUnassigned, item.Status)
	assert.Equal(t, "Ada", item.AssignedTo)
}

func TestDeviceDetail_Item(t *testing.T) {
	var d DeviceDetail
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 5,
		"device_type_detail": {"id": 2, "name": "Monitor"},
		"serial_number": "MON-1",
		"status": "working",
		"purchase_price": "199.5",
		"employee_detail": {"full_name": "Grace Hopper"}
	}`), &d))

	item := d.Item()
	assert.Equal(t, "Monitor", item.Name)
	assert.Equal(t, 2, item.Type)
	assert.Equal(t, "$199.50", item.Price)
	assert.Equal(t, "199.50", item.PurchasePrice)
	assert.Equal(t, "Grace Hopper", item.AssignedTo)

	assert.Equal(t, UnknownDevice, DeviceDetail{}.Item().Name)
}

func TestPrice_UnmarshalJSON(t *testing.T) {
	for _, in := range []string{`null`, `""`} {
		var p Price
		require.NoError(t, json.Unmarshal([]byte(in), &p))
		assert.False(t, p.Valid)
	}

	var p Price
	require.NoError(t, json.Unmarshal([]byte(`1200`), &p))
	assert.True(t, p.Decimal.Equal(decimal.NewFromInt(1200)))
}

func TestDeviceDetail_AuditView(t *testing.T) {
	d := DeviceDetail{
		ID:               7,
		ModelName:        "EliteBook",
		SerialNumber:     "SN7",
		StatusDisplay:    "Working",
		ConditionDisplay: "Good",
		PurchaseDate:     ptr("2025-11-04"),
		AssignmentHistory: []AssignmentHistory{
			{ID: 1, EmployeeName: "Ada", AssignedDate: "2025-11-04T10:00:00Z", DurationDays: 3},
		},
	}

	v := d.AuditView()
	assert.Equal(t, "7", v.ID)
	assert.Equal(t, DefaultCategory, v.Category)
	assert.Equal(t, PlaceholderImage, v.Image)
	assert.Equal(t, NotAvailable, v.EmployeeName)
	assert.Equal(t, NotAvailable, v.Brand)
	assert.Equal(t, "04 Nov 2025", v.PurchaseDate)
	assert.Equal(t, NotAvailable, v.WarrantyExpiry)
	require.Len(t, v.AssignmentHistory, 1)
	assert.Equal(t, "04 Nov 2025", v.AssignmentHistory[0].AssignedDate)

	li := d.ListItem(true)
	assert.Equal(t, ListItem{ID: 7, Name: "EliteBook", SerialNumber: "SN7", Category: DefaultCategory, IsAudited: true}, li)
}

func TestUpdateRequest_Payload(t *testing.T) {
	p := UpdateRequest{Name: ptr("ThinkPad"), PurchaseDate: ptr("")}.Payload()
	body, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"model_name":"ThinkPad","purchase_date":null,"warranty_expiry":null}`, string(body))
}

func TestCreateRequest_Validate(t *testing.T) {
	req := CreateRequest{Status: "broken"}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Serial number is required")
	assert.Contains(t, err.Error(), "status must be one of")

	ok := CreateRequest{DeviceType: 1, SerialNumber: "SN", ModelName: "X"}
	assert.NoError(t, ok.Validate())
}
