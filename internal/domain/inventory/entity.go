package inventory

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	StatusWorking    = "working"
	StatusRepair     = "repair"
	StatusUnassigned = "unassigned"

	StatusDisplayUnassigned = "Unassigned"
	UnknownDevice           = "Unknown Device"
	NotSet                  = "-"
)

// Price is a decimal amount that may be null or an empty string.
type Price struct {
	decimal.NullDecimal
}

func NewPrice(d decimal.Decimal) Price {
	return Price{decimal.NewNullDecimal(d)}
}

func (p *Price) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		p.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	return p.NullDecimal.UnmarshalJSON(trimmed)
}

// ========== SUMMARY ==========

type DeviceTypeSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Total       int    `json:"total"`
	Working     int    `json:"working"`
	Assigned    int    `json:"assigned"`
	Unassigned  int    `json:"unassigned"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Summary is the inventory dashboard payload.
type Summary struct {
	TotalDevices    int                 `json:"total_devices"`
	TotalAssigned   int                 `json:"total_assigned"`
	TotalUnassigned int                 `json:"total_unassigned"`
	DeviceTypes     []DeviceTypeSummary `json:"device_types"`
	StatusBreakdown []StatusCount       `json:"status_breakdown"`
}

type SummaryResponse struct {
	Error int      `json:"error"`
	Data  *Summary `json:"data"`
}

// Category is a device type card.
type Category struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Total      int    `json:"total"`
	Working    int    `json:"working"`
	Unassigned int    `json:"unassigned"`
	Icon       string `json:"icon"`
}

func (t DeviceTypeSummary) Category() Category {
	return Category{
		ID:         strconv.Itoa(t.ID),
		Name:       t.Name,
		Total:      t.Total,
		Working:    t.Working,
		Unassigned: t.Unassigned,
		Icon:       IconName(t.Name),
	}
}

var icons = []struct {
	keys []string
	icon string
}{
	{[]string{"mobile", "phone"}, "Smartphone"},
	{[]string{"laptop"}, "Laptop"},
	{[]string{"mouse"}, "MousePointer2"},
	{[]string{"keyboard"}, "Keyboard"},
	{[]string{"charger", "power"}, "Zap"},
	{[]string{"monitor", "screen", "display"}, "Monitor"},
	{[]string{"camera", "webcam"}, "Camera"},
	{[]string{"ac", "conditioner"}, "AirVent"},
	{[]string{"light"}, "Lightbulb"},
	{[]string{"wifi", "modem"}, "Wifi"},
	{[]string{"headphone", "audio"}, "Headphones"},
}

// IconName maps a device type name to an icon key. The first matching rule wins.
func IconName(name string) string {
	n := strings.ToLower(name)
	for _, rule := range icons {
		for _, k := range rule.keys {
			if strings.Contains(n, k) {
				return rule.icon
			}
		}
	}
	return "CircleDashed"
}

// ========== DEVICES ==========

// Device is a row of a device list.
type Device struct {
	ID               int     `json:"id"`
	DeviceType       int     `json:"device_type"`
	DeviceTypeName   string  `json:"device_type_name"`
	SerialNumber     string  `json:"serial_number"`
	ModelName        string  `json:"model_name"`
	Brand            string  `json:"brand"`
	Status           string  `json:"status"`
	StatusDisplay    string  `json:"status_display"`
	Condition        string  `json:"condition"`
	ConditionDisplay string  `json:"condition_display"`
	EmployeeName     *string `json:"employee_name"`
	PurchaseDate     *string `json:"purchase_date"`
	WarrantyExpiry   *string `json:"warranty_expiry"`
	IsActive         *bool   `json:"is_active"`
	CreatedAt        string  `json:"created_at"`
}

type DeviceListResponse struct {
	Error int      `json:"error"`
	Data  []Device `json:"data"`
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// NormalizeUnassigned fills the defaults of a device from the unassigned listing.
func NormalizeUnassigned(d Device) Device {
	if d.Status == "" {
		d.Status = StatusUnassigned
	}
	if d.StatusDisplay == "" {
		d.StatusDisplay = StatusDisplayUnassigned
	}
	d.EmployeeName = nil
	d.PurchaseDate = nonEmpty(d.PurchaseDate)
	d.WarrantyExpiry = nonEmpty(d.WarrantyExpiry)
	if d.IsActive == nil {
		active := true
		d.IsActive = &active
	}
	return d
}

// Item is the table view of a device.
type Item struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           int    `json:"type"`
	PurchaseDate   string `json:"purchaseDate"`
	PurchasePrice  string `json:"purchase_price,omitempty"`
	WarrantyExpire string `json:"warrantyExpire"`
	Price          string `json:"price"`
	SerialNumber   string `json:"serialNumber"`
	InternalSerial string `json:"internalSerial"`
	DeviceTypeName string `json:"devicetypeName"`
	Status         string `json:"status"`
	AssignedTo     string `json:"assignedTo,omitempty"`
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

func (d Device) Item() Item {
	name := d.ModelName
	if name == "" {
		name = d.DeviceTypeName
	}
	status := d.Status
	if status == "" {
		status = StatusUnassigned
	}
	return Item{
		ID:             strconv.Itoa(d.ID),
		Name:           name,
		Type:           d.ID,
		PurchaseDate:   orDefault(d.PurchaseDate, NotSet),
		WarrantyExpire: orDefault(d.WarrantyExpiry, NotSet),
		Price:          NotSet,
		SerialNumber:   d.SerialNumber,
		InternalSerial: d.SerialNumber,
		DeviceTypeName: d.DeviceTypeName,
		Status:         status,
		AssignedTo:     orDefault(d.EmployeeName, ""),
	}
}

// ========== DETAIL ==========

type DeviceTypeDetail struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type EmployeeDetail struct {
	ID          int    `json:"id"`
	FullName    string `json:"full_name"`
	EmployeeID  string `json:"employee_id"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photo_url"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

type AssignmentHistory struct {
	ID                    int     `json:"id"`
	DeviceInfo            string  `json:"device_info"`
	DeviceType            string  `json:"device_type"`
	EmployeeName          string  `json:"employee_name"`
	EmployeeIDStr         string  `json:"employee_id_str"`
	AssignedByName        string  `json:"assigned_by_name"`
	AssignedDate          string  `json:"assigned_date"`
	DurationDays          int     `json:"duration_days"`
	ConditionAtAssignment string  `json:"condition_at_assignment"`
	ConditionAtReturn     *string `json:"condition_at_return"`
}

type DeviceDetail struct {
	ID                int                 `json:"id"`
	DeviceType        int                 `json:"device_type"`
	DeviceTypeDetail  *DeviceTypeDetail   `json:"device_type_detail"`
	SerialNumber      string              `json:"serial_number"`
	ModelName         string              `json:"model_name"`
	Brand             string              `json:"brand"`
	Status            string              `json:"status"`
	StatusDisplay     string              `json:"status_display"`
	Condition         string              `json:"condition"`
	ConditionDisplay  string              `json:"condition_display"`
	Employee          *int                `json:"employee"`
	EmployeeDetail    *EmployeeDetail     `json:"employee_detail"`
	PurchaseDate      *string             `json:"purchase_date"`
	PurchasePrice     Price               `json:"purchase_price"`
	WarrantyExpiry    *string             `json:"warranty_expiry"`
	IsUnderWarranty   bool                `json:"is_under_warranty"`
	Notes             string              `json:"notes"`
	IsActive          bool                `json:"is_active"`
	IsAssigned        bool                `json:"is_assigned"`
	CreatedAt         string              `json:"created_at"`
	UpdatedAt         string              `json:"updated_at"`
	PhotoURL          string              `json:"photo_url,omitempty"`
	WarrantyDocURL    string              `json:"warranty_doc_url,omitempty"`
	InvoiceDocURL     string              `json:"invoice_doc_url,omitempty"`
	AssignmentHistory []AssignmentHistory `json:"assignment_history,omitempty"`
}

// TypeName is the device type name, or "".
func (d DeviceDetail) TypeName() string {
	if d.DeviceTypeDetail == nil {
		return ""
	}
	return d.DeviceTypeDetail.Name
}

// Item is the side panel view of the device.
func (d DeviceDetail) Item() Item {
	name := d.ModelName
	if name == "" {
		name = d.TypeName()
	}
	if name == "" {
		name = UnknownDevice
	}
	typeID := 0
	if d.DeviceTypeDetail != nil {
		typeID = d.DeviceTypeDetail.ID
	}
	price := NotSet
	purchasePrice := ""
	if d.PurchasePrice.Valid {
		purchasePrice = d.PurchasePrice.Decimal.StringFixed(2)
		price = "$" + purchasePrice
	}
	status := d.Status
	if status == "" {
		status = StatusUnassigned
	}
	assigned := ""
	if d.EmployeeDetail != nil {
		assigned = d.EmployeeDetail.FullName
	}
	return Item{
		ID:             strconv.Itoa(d.ID),
		Name:           name,
		Type:           typeID,
		PurchaseDate:   orDefault(d.PurchaseDate, ""),
		PurchasePrice:  purchasePrice,
		WarrantyExpire: orDefault(d.WarrantyExpiry, ""),
		Price:          price,
		SerialNumber:   d.SerialNumber,
		InternalSerial: d.SerialNumber,
		DeviceTypeName: d.TypeName(),
		Status:         status,
		AssignedTo:     assigned,
	}
}

// ========== COMMENTS ==========

type CommentRaw struct {
	ID            int    `json:"id"`
	Device        int    `json:"device"`
	Employee      int    `json:"employee"`
	EmployeeName  string `json:"employee_name"`
	PhotoURL      string `json:"photo_url"`
	Comment       string `json:"comment"`
	CreatedAt     string `json:"created_at"`
	FormattedDate string `json:"formatted_date"`
}

type CommentsResponse struct {
	Error int          `json:"error"`
	Data  []CommentRaw `json:"data"`
}

type Comment struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Text   string `json:"text"`
	Date   string `json:"date"`
	Avatar string `json:"avatar"`
}

func (c CommentRaw) View() Comment {
	return Comment{
		ID:     strconv.Itoa(c.ID),
		Author: c.EmployeeName,
		Text:   c.Comment,
		Date:   c.FormattedDate,
		Avatar: c.PhotoURL,
	}
}

type MessageResponse struct {
	Error int `json:"error"`
	Data  *struct {
		Message string `json:"message"`
	} `json:"data"`
}
