package leave

import (
	"errors"
	"strings"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

type ApplyRequest struct {
	LeaveType    string `json:"leave_type" validate:"required" msg:"Please select leave type"`
	FromDate     string `json:"from_date" validate:"required,datetime=2006-01-02" msg:"Start date is required"`
	ToDate       string `json:"to_date" validate:"required,datetime=2006-01-02" msg:"End date is required"`
	Reason       string `json:"reason" validate:"required,min=5" msg:"Reason is too short"`
	IsFirstHalf  *bool  `json:"is_first_half,omitempty"`
	IsSecondHalf *bool  `json:"is_second_half,omitempty"`
}

// Validate trims the free-text fields before checking them.
func (r *ApplyRequest) Validate() error {
	r.LeaveType = strings.TrimSpace(r.LeaveType)
	r.Reason = strings.TrimSpace(r.Reason)

	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil && !errors.As(err, &errs) {
		return err
	}

	from, fromOK := validator.IsValidDate(r.FromDate)
	to, toOK := validator.IsValidDate(r.ToDate)
	if fromOK && toOK && to.Before(from) {
		errs.Add("to_date", "End date cannot be before start date")
	}

	return errs.Err()
}
