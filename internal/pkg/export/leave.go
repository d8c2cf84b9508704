package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/leave"
	"github.com/xuri/excelize/v2"
)

const (
	leaveSheet = "Leave Balances"

	// ContentTypeXLSX is the MIME type of the written workbook.
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// LeaveBalances writes one row per employee with allocated/used/pending/available
// columns for every leave type present, followed by the summary totals.
func LeaveBalances(w io.Writer, balances []leave.EmployeeBalance) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", leaveSheet); err != nil {
		return err
	}

	types := leaveTypes(balances)

	header := []interface{}{"Employee ID", "Employee Name", "Designation", "Department"}
	for _, t := range types {
		header = append(header,
			t+" Allocated", t+" Used", t+" Pending", t+" Available")
	}
	header = append(header, "Total Allocated", "Total Used", "Total Pending", "Total Available")

	if err := f.SetSheetRow(leaveSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(leaveSheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}

	for i, eb := range balances {
		row := []interface{}{eb.EmployeeID, eb.EmployeeName, eb.Designation, eb.Department}
		for _, t := range types {
			b, ok := eb.Balances[t]
			if !ok {
				row = append(row, "", "", "", "")
				continue
			}
			pending := 0.0
			if b.Pending != nil {
				pending = *b.Pending
			}
			row = append(row, b.Allocated, b.Used, pending, b.Available)
		}
		row = append(row,
			eb.Summary.TotalAllocated, eb.Summary.TotalUsed,
			eb.Summary.TotalPending, eb.Summary.TotalAvailable)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(leaveSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}

func leaveTypes(balances []leave.EmployeeBalance) []string {
	seen := map[string]bool{}
	var types []string
	for _, eb := range balances {
		for t := range eb.Balances {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	sort.Strings(types)
	return types
}
