package employee

import (
	"encoding/json"
	"fmt"
)

type Department struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	Manager     *int   `json:"manager,omitempty"`
	ManagerName string `json:"manager_name,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// Active treats a missing is_active as active.
func (d Department) Active() bool {
	return d.IsActive == nil || *d.IsActive
}

type Designation struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Department     int    `json:"department"`
	DepartmentName string `json:"department_name"`
	Level          int    `json:"level"`
	Description    string `json:"description,omitempty"`
	IsActive       bool   `json:"is_active"`
}

type Employee struct {
	ID         int    `json:"id"`
	EmployeeID string `json:"employee_id"`
	User       *int   `json:"user"`

	FullName   string `json:"full_name"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`

	Email          string `json:"email"`
	Phone          string `json:"phone"`
	AlternatePhone string `json:"alternate_phone,omitempty"`

	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Gender        string `json:"gender,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`
	Nationality   string `json:"nationality,omitempty"`
	BloodGroup    string `json:"blood_group,omitempty"`

	Photo *string `json:"photo,omitempty"`

	Department        int          `json:"department"`
	DepartmentDetail  *Department  `json:"department_detail,omitempty"`
	Designation       int          `json:"designation"`
	DesignationDetail *Designation `json:"designation_detail,omitempty"`

	ReportingManager *int   `json:"reporting_manager,omitempty"`
	ManagerDetail    string `json:"manager_detail,omitempty"`

	EmployeeType      string `json:"employee_type,omitempty"`
	EmploymentStatus  string `json:"employment_status,omitempty"`
	JoiningDate       string `json:"joining_date,omitempty"`
	ProbationEndDate  string `json:"probation_end_date,omitempty"`
	ConfirmationDate  string `json:"confirmation_date,omitempty"`
	WorkLocation      string `json:"work_location,omitempty"`
	BankName          string `json:"bank_name,omitempty"`
	AccountNumber     string `json:"account_number,omitempty"`
	IFSCCode          string `json:"ifsc_code,omitempty"`
	AccountHolderName string `json:"account_holder_name,omitempty"`

	EmergencyContacts []json.RawMessage `json:"emergency_contacts,omitempty"`
	Educations        []json.RawMessage `json:"educations,omitempty"`
	WorkHistories     []json.RawMessage `json:"work_histories,omitempty"`

	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Merge overlays the JSON fields of patch onto e and returns the result.
// Fields absent from patch keep their value.
func Merge(e Employee, patch map[string]any) (Employee, error) {
	base, err := json.Marshal(e)
	if err != nil {
		return e, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return e, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return e, err
	}
	var out Employee
	if err := json.Unmarshal(merged, &out); err != nil {
		return e, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return out, nil
}

// Lookup is one row of the employee lookup list.
type Lookup struct {
	ID               int     `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	FullName         string  `json:"full_name"`
	Photo            *string `json:"photo,omitempty"`
	PhotoURL         *string `json:"photo_url,omitempty"`
	DesignationName  string  `json:"designation_name,omitempty"`
	DepartmentName   string  `json:"department_name,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
	EmploymentStatus string  `json:"employment_status,omitempty"`
}

// Option is a selectable employee in the context switcher.
type Option struct {
	ID          int    `json:"id"`
	Label       string `json:"label"`
	Value       int    `json:"value"`
	Avatar      string `json:"avatar,omitempty"`
	Suffix      string `json:"suffix"`
	Designation string `json:"designation,omitempty"`
	Department  string `json:"department,omitempty"`
	IsInactive  bool   `json:"isInactive"`
}

func (l Lookup) Option() Option {
	avatar := ""
	if l.PhotoURL != nil {
		avatar = *l.PhotoURL
	}
	return Option{
		ID:          l.ID,
		Label:       l.FullName,
		Value:       l.ID,
		Avatar:      avatar,
		Suffix:      l.EmployeeID,
		Designation: l.DesignationName,
		Department:  l.DepartmentName,
		IsInactive:  (l.IsActive != nil && !*l.IsActive) || l.EmploymentStatus == "terminated",
	}
}

// DepartmentOption is a department select entry.
type DepartmentOption struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}
