package attendance

import (
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/utils"
)

// Record is one day of the current user's attendance.
type Record struct {
	ID           int      `json:"id"`
	FullDate     string   `json:"full_date"`
	Day          string   `json:"day,omitempty"`
	Status       string   `json:"status"`
	CheckIn      *string  `json:"check_in"`
	CheckOut     *string  `json:"check_out"`
	WorkingHours *float64 `json:"working_hours,omitempty"`
	Remarks      *string  `json:"remarks,omitempty"`
}

// CheckInLabel renders the check-in clock time as "hh:mm AM".
func (r Record) CheckInLabel() string {
	if r.CheckIn == nil {
		return ""
	}
	return utils.FormatTime24ToAmPm(*r.CheckIn)
}

func (r Record) CheckOutLabel() string {
	if r.CheckOut == nil {
		return ""
	}
	return utils.FormatTime24ToAmPm(*r.CheckOut)
}

// TotalHours is the span between check-in and check-out with one decimal.
func (r Record) TotalHours() string {
	if r.CheckIn == nil || r.CheckOut == nil {
		return "0"
	}
	return utils.CalculateTotalHours(*r.CheckIn, *r.CheckOut)
}

type ListResponse struct {
	Results struct {
		Data []Record `json:"data"`
	} `json:"results"`
}
