package payroll

import "github.com/shopspring/decimal"

const (
	StatusPaid       = "Paid"
	StatusProcessing = "Processing"
	StatusFailed     = "Failed"
)

// Record is one monthly salary payment.
type Record struct {
	ID          string          `json:"id"`
	Month       string          `json:"month"`
	Year        int             `json:"year"`
	NetPaid     decimal.Decimal `json:"net_paid"`
	Gross       decimal.Decimal `json:"gross"`
	Deductions  decimal.Decimal `json:"deductions"`
	Status      string          `json:"status"`
	PaymentDate string          `json:"payment_date"`
	PayslipID   string          `json:"payslip_id"`
	BankName    string          `json:"bank_name"`
	AccNumber   string          `json:"acc_number"`
}

type ListResponse struct {
	Results   []Record        `json:"results"`
	AnnualCTC decimal.Decimal `json:"annual_ctc"`
}

// View is the salary page shape of a record. Amounts carry two decimals.
type View struct {
	ID          string `json:"id"`
	Month       string `json:"month"`
	Year        int    `json:"year"`
	NetPaid     string `json:"netPaid"`
	Gross       string `json:"gross"`
	Deductions  string `json:"deductions"`
	Status      string `json:"status"`
	PaymentDate string `json:"paymentDate"`
	PayslipID   string `json:"payslipId"`
	BankName    string `json:"bankName"`
	AccNumber   string `json:"accNumber"`
}

func (r Record) View() View {
	return View{
		ID:          r.ID,
		Month:       r.Month,
		Year:        r.Year,
		NetPaid:     r.NetPaid.StringFixed(2),
		Gross:       r.Gross.StringFixed(2),
		Deductions:  r.Deductions.StringFixed(2),
		Status:      r.Status,
		PaymentDate: r.PaymentDate,
		PayslipID:   r.PayslipID,
		BankName:    r.BankName,
		AccNumber:   r.AccNumber,
	}
}

// Balanced reports whether net pay equals gross minus deductions.
func (r Record) Balanced() bool {
	return r.Gross.Sub(r.Deductions).Equal(r.NetPaid)
}
