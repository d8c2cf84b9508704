package inventory

import (
	"strconv"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/utils"
)

const (
	NotAvailable       = "N/A"
	DefaultCategory    = "Device"
	PlaceholderImage   = "https://placehold.co/600x400/F1F5F9/64748B?text=Device"
	AuditSubmittedText = "Device audit submitted successfully"
)

type AuditDevice struct {
	ID        int  `json:"id"`
	IsAudited bool `json:"isAudited"`
}

// AuditStatus reports which assigned devices the user has audited.
type AuditStatus struct {
	AllItemsAudited bool          `json:"allItemsAudited"`
	Devices         []AuditDevice `json:"devices"`
}

type AuditStatusResponse struct {
	Data *AuditStatus `json:"data"`
}

// ListItem is a row of the audit device list.
type ListItem struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber"`
	Category     string `json:"category"`
	IsAudited    bool   `json:"isAudited"`
}

func (d DeviceDetail) category() string {
	if name := d.TypeName(); name != "" {
		return name
	}
	return DefaultCategory
}

func (d DeviceDetail) ListItem(audited bool) ListItem {
	return ListItem{
		ID:           d.ID,
		Name:         d.ModelName,
		SerialNumber: d.SerialNumber,
		Category:     d.category(),
		IsAudited:    audited,
	}
}

type Assignment struct {
	ID                    int    `json:"id"`
	DeviceInfo            string `json:"deviceInfo"`
	DeviceType            string `json:"deviceType"`
	EmployeeName          string `json:"employeeName"`
	EmployeeIDStr         string `json:"employeeIdStr"`
	AssignedBy            string `json:"assignedBy"`
	AssignedDate          string `json:"assignedDate"`
	DurationDays          int    `json:"durationDays"`
	ConditionAtAssignment string `json:"conditionAtAssignment"`
	ConditionAtReturn     string `json:"conditionAtReturn"`
}

// AuditView is the audit page card of a device.
type AuditView struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Category          string       `json:"category"`
	AssetID           string       `json:"assetId"`
	SerialNumber      string       `json:"serialNumber"`
	Model             string       `json:"model"`
	Image             string       `json:"image"`
	Status            string       `json:"status"`
	Condition         string       `json:"condition"`
	EmployeeName      string       `json:"employeeName"`
	EmployeeID        string       `json:"employeeId"`
	Email             string       `json:"email"`
	Photo             string       `json:"photo"`
	Department        string       `json:"department"`
	Designation       string       `json:"designation"`
	Brand             string       `json:"brand"`
	PurchaseDate      string       `json:"purchaseDate"`
	WarrantyExpiry    string       `json:"warrantyExpiry"`
	IsUnderWarranty   bool         `json:"isUnderWarranty"`
	AssignmentHistory []Assignment `json:"assignmentHistory"`
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func formatOptionalDate(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return utils.FormatDateFromISO(*s)
}

func (d DeviceDetail) AuditView() AuditView {
	emp := EmployeeDetail{}
	if d.EmployeeDetail != nil {
		emp = *d.EmployeeDetail
	}

	v := AuditView{
		ID:                strconv.Itoa(d.ID),
		Name:              d.ModelName,
		Category:          d.category(),
		AssetID:           d.SerialNumber,
		SerialNumber:      d.SerialNumber,
		Model:             d.ModelName,
		Image:             or(emp.PhotoURL, PlaceholderImage),
		Status:            d.StatusDisplay,
		Condition:         d.ConditionDisplay,
		EmployeeName:      or(emp.FullName, NotAvailable),
		EmployeeID:        or(emp.EmployeeID, NotAvailable),
		Email:             or(emp.Email, NotAvailable),
		Photo:             emp.PhotoURL,
		Department:        or(emp.Department, NotAvailable),
		Designation:       or(emp.Designation, NotAvailable),
		Brand:             or(d.Brand, NotAvailable),
		PurchaseDate:      formatOptionalDate(d.PurchaseDate),
		WarrantyExpiry:    formatOptionalDate(d.WarrantyExpiry),
		IsUnderWarranty:   d.IsUnderWarranty,
		AssignmentHistory: make([]Assignment, 0, len(d.AssignmentHistory)),
	}
	for _, h := range d.AssignmentHistory {
		ret := ""
		if h.ConditionAtReturn != nil {
			ret = *h.ConditionAtReturn
		}
		v.AssignmentHistory = append(v.AssignmentHistory, Assignment{
			ID:                    h.ID,
			DeviceInfo:            h.DeviceInfo,
			DeviceType:            h.DeviceType,
			EmployeeName:          h.EmployeeName,
			EmployeeIDStr:         h.EmployeeIDStr,
			AssignedBy:            h.AssignedByName,
			AssignedDate:          utils.FormatDateFromISO(h.AssignedDate),
			DurationDays:          h.DurationDays,
			ConditionAtAssignment: h.ConditionAtAssignment,
			ConditionAtReturn:     ret,
		})
	}
	return v
}
