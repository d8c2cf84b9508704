package payroll

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_View(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "1", "month": "November", "year": 2025,
		"net_paid": "12450", "gross": 14200.5, "deductions": "1750.50",
		"status": "Paid", "payslip_id": "PAY-25-11-001"
	}`), &r))

	v := r.View()
	assert.Equal(t, "12450.00", v.NetPaid)
	assert.Equal(t, "14200.50", v.Gross)
	assert.Equal(t, "1750.50", v.Deductions)
	assert.Equal(t, "PAY-25-11-001", v.PayslipID)
	assert.True(t, r.Balanced())
}
