package leave

import "strings"

const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"

	DefaultRejectionReason = "Leave Rejected"
)

type Request struct {
	ID         int     `json:"id"`
	FromDate   string  `json:"from_date"`
	ToDate     string  `json:"to_date"`
	NoOfDays   float64 `json:"no_of_days"`
	Reason     string  `json:"reason"`
	LeaveType  string  `json:"leave_type"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
	DocLinkURL *string `json:"doc_link_url"`
}

// PendingRequest is a request as seen by an approver.
type PendingRequest struct {
	Request
	EmployeeName string `json:"employee_name"`
	EmployeeID   int    `json:"employee_id"`
}

type ListResponse struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Request `json:"results"`
}

type Balance struct {
	Allocated      float64  `json:"allocated"`
	Used           float64  `json:"used"`
	Pending        *float64 `json:"pending,omitempty"`
	Available      float64  `json:"available"`
	CarriedForward *float64 `json:"carried_forward,omitempty"`
}

// Balances is keyed by leave type name.
type Balances map[string]Balance

type BalanceResponse struct {
	Error int      `json:"error"`
	Data  Balances `json:"data"`
}

type BalanceSummary struct {
	TotalAllocated float64 `json:"total_allocated"`
	TotalUsed      float64 `json:"total_used"`
	TotalPending   float64 `json:"total_pending"`
	TotalAvailable float64 `json:"total_available"`
}

type EmployeeBalance struct {
	EmployeeID   int            `json:"employee_id"`
	EmployeeName string         `json:"employee_name"`
	Designation  string         `json:"designation,omitempty"`
	Department   string         `json:"department,omitempty"`
	Balances     Balances       `json:"balances"`
	Summary      BalanceSummary `json:"summary"`
}

type EmployeeBalancesResponse struct {
	Error int               `json:"error"`
	Data  []EmployeeBalance `json:"data"`
}

// StatusPatch is the PATCH body of a status change.
type StatusPatch struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	ApproverNotes   string `json:"approver_notes,omitempty"`
}

// NewStatusPatch rejects with the default reason.
func NewStatusPatch(status string) StatusPatch {
	p := StatusPatch{Status: status}
	if status == StatusRejected {
		p.RejectionReason = DefaultRejectionReason
	}
	return p
}

// NewStatusPatchWithReason sends reason as the rejection reason or as approver notes.
func NewStatusPatchWithReason(status, reason string) StatusPatch {
	p := StatusPatch{Status: status}
	switch {
	case status == StatusRejected:
		p.RejectionReason = reason
		if p.RejectionReason == "" {
			p.RejectionReason = DefaultRejectionReason
		}
	case status == StatusApproved && reason != "":
		p.ApproverNotes = reason
	}
	return p
}

// Meta is the display colour and icon of a leave type.
type Meta struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var metas = map[string]Meta{
	"Annual Leave": {Color: "indigo", Icon: "i-lucide-plane"},
	"Sick Leave":   {Color: "rose", Icon: "i-lucide-heart"},
	"Casual Leave": {Color: "amber", Icon: "i-lucide-umbrella"},
	"rh":           {Color: "emerald", Icon: "i-lucide-file-text"},
}

// MetaFor looks up leaveType, falling back to a case-insensitive match.
func MetaFor(leaveType string) (Meta, bool) {
	if m, ok := metas[leaveType]; ok {
		return m, true
	}
	for name, m := range metas {
		if strings.EqualFold(name, leaveType) {
			return m, true
		}
	}
	return Meta{}, false
}
