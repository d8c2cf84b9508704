package inventory

import (
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// UpdateRequest is a partial device edit. Nil fields are not sent.
type UpdateRequest struct {
	DeviceType     *int             `json:"device_type,omitempty"`
	Brand          *string          `json:"brand,omitempty"`
	Condition      *string          `json:"condition,omitempty"`
	Employee       *int             `json:"employee,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
	Name           *string          `json:"name,omitempty"`
	SerialNumber   *string          `json:"serial_number,omitempty"`
	Status         *string          `json:"status,omitempty"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price,omitempty"`
	PurchaseDate   *string          `json:"purchase_date,omitempty"`
	WarrantyExpiry *string          `json:"warranty_expiry,omitempty"`
}

// UpdatePayload is the PUT body. Empty dates are sent as null.
type UpdatePayload struct {
	DeviceType     *int             `json:"device_type,omitempty"`
	Brand          *string          `json:"brand,omitempty"`
	Condition      *string          `json:"condition,omitempty"`
	Employee       *int             `json:"employee,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
	ModelName      *string          `json:"model_name,omitempty"`
	SerialNumber   *string          `json:"serial_number,omitempty"`
	Status         *string          `json:"status,omitempty"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price,omitempty"`
	PurchaseDate   *string          `json:"purchase_date"`
	WarrantyExpiry *string          `json:"warranty_expiry"`
}

func (r UpdateRequest) Payload() UpdatePayload {
	return UpdatePayload{
		DeviceType:     r.DeviceType,
		Brand:          r.Brand,
		Condition:      r.Condition,
		Employee:       r.Employee,
		Notes:          r.Notes,
		IsActive:       r.IsActive,
		ModelName:      r.Name,
		SerialNumber:   r.SerialNumber,
		Status:         r.Status,
		PurchasePrice:  r.PurchasePrice,
		PurchaseDate:   nonEmpty(r.PurchaseDate),
		WarrantyExpiry: nonEmpty(r.WarrantyExpiry),
	}
}

// CreateRequest is the body of a new device.
type CreateRequest struct {
	DeviceType     int              `json:"device_type" validate:"required" msg:"Device type is required"`
	SerialNumber   string           `json:"serial_number" validate:"required" msg:"Serial number is required"`
	ModelName      string           `json:"model_name" validate:"required" msg:"Model name is required"`
	Brand          string           `json:"brand"`
	Status         string           `json:"status" validate:"omitempty,oneof=working repair unassigned"`
	Condition      string           `json:"condition"`
	Employee       *int             `json:"employee"`
	PurchaseDate   *string          `json:"purchase_date"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price"`
	WarrantyExpiry *string          `json:"warranty_expiry"`
	Notes          string           `json:"notes"`
	IsActive       bool             `json:"is_active"`
	Photo          string           `json:"photo,omitempty"`
	WarrantyDoc    string           `json:"warranty_doc,omitempty"`
	InvoiceDoc     string           `json:"invoice_doc,omitempty"`
}

func (r *CreateRequest) Validate() error {
	return validator.Struct(r)
}

// AuditSubmission is the body of a device audit.
type AuditSubmission struct {
	Condition string `json:"condition" validate:"required" msg:"Condition is required"`
	Status    string `json:"status" validate:"required" msg:"Status is required"`
	Comment   string `json:"comment"`
}

func (a *AuditSubmission) Validate() error {
	return validator.Struct(a)
}
