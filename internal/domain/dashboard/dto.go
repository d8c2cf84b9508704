package dashboard

// ========== OVERVIEW ==========

// Overview holds the headline cards of the employee dashboard
type Overview struct {
	MonthlyAttendancePct string `json:"monthly_attendance_pct"`
	AttendanceTrend      string `json:"attendance_trend"`
	LeaveBalance         string `json:"leave_balance"`
	TasksCompleted       int    `json:"tasks_completed"`
	TasksTrend           string `json:"tasks_trend"`
	EmployeeScore        int    `json:"employee_score"`
}

// ========== HOLIDAYS ==========

type Holiday struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Date string `json:"date"`
}

// ========== LEAVE CHART ==========

type LeaveBreakdownItem struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type LeaveChart struct {
	Breakdown []LeaveBreakdownItem `json:"breakdown"`
}

// ========== PERFORMANCE ==========

type PerformanceWidget struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ========== COMBINED DASHBOARD ==========

// Summary is the payload of GET /api/dashboard/summary/
type Summary struct {
	Overview          *Overview          `json:"overview"`
	UpcomingHolidays  []Holiday          `json:"upcoming_holidays"`
	LeaveChart        *LeaveChart        `json:"leave_chart"`
	PerformanceWidget *PerformanceWidget `json:"performance_widget"`
}

type SummaryResponse struct {
	Error int      `json:"error"`
	Data  *Summary `json:"data"`
}
