package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
)

type PayrollHandler interface {
	Salary(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	registry *store.Registry
}

func NewPayrollHandler(registry *store.Registry) PayrollHandler {
	return &PayrollHandlerImpl{registry: registry}
}

// Salary implements PayrollHandler. ?record= selects the payslip shown in detail.
func (h *PayrollHandlerImpl) Salary(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	records, err := set.Payroll.FetchRecords(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if id := r.URL.Query().Get("record"); id != "" {
		set.Payroll.Select(id)
	}

	views := make([]payroll.View, 0, len(records))
	for _, rec := range records {
		views = append(views, rec.View())
	}
	data := map[string]any{
		"records":    views,
		"annual_ctc": set.Payroll.AnnualCTC().StringFixed(2),
		"selected":   nil,
	}
	if sel, ok := set.Payroll.Selected(); ok {
		data["selected"] = sel.View()
	}
	response.Success(w, data)
}
