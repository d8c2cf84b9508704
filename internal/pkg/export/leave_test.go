package export

import (
	"bytes"
	"testing"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLeaveBalances(t *testing.T) {
	pending := 1.0
	balances := []leave.EmployeeBalance{
		{
			EmployeeID:   1,
			EmployeeName: "John Doe",
			Designation:  "Software Engineer",
			Department:   "Engineering",
			Balances: leave.Balances{
				"Sick Leave":   {Allocated: 10, Used: 2, Pending: &pending, Available: 7},
				"Annual Leave": {Allocated: 12, Used: 4, Available: 8},
			},
			Summary: leave.BalanceSummary{TotalAllocated: 22, TotalUsed: 6, TotalPending: 1, TotalAvailable: 15},
		},
		{
			EmployeeID:   2,
			EmployeeName: "Jane Smith",
			Balances:     leave.Balances{"RH": {Allocated: 2, Available: 2}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, LeaveBalances(&buf, balances))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(leaveSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Annual Leave Allocated", rows[0][4])
	assert.Equal(t, "RH Allocated", rows[0][8])
	assert.Equal(t, "Sick Leave Pending", rows[0][14])
	assert.Equal(t, "Total Available", rows[0][19])

	assert.Equal(t, "John Doe", rows[1][1])
	assert.Equal(t, "12", rows[1][4])
	assert.Equal(t, "1", rows[1][14])
	assert.Equal(t, "15", rows[1][19])

	assert.Equal(t, "Jane Smith", rows[2][1])
	assert.Equal(t, "2", rows[2][8])
}
