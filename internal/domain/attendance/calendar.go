package attendance

import "time"

type View string

const (
	ViewMonth View = "month"
	ViewWeek  View = "week"

	DateLayout  = "2006-01-02"
	LabelLayout = "Jan 2006"
)

func (v View) Valid() bool {
	return v == ViewMonth || v == ViewWeek
}

// CalendarDay is one cell of the calendar grid.
type CalendarDay struct {
	Date           time.Time `json:"date"`
	DateKey        string    `json:"dateKey"`
	IsCurrentMonth bool      `json:"isCurrentMonth"`
	IsToday        bool      `json:"isToday"`
	Record         *Record   `json:"record"`
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	t = midnight(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// EndOfWeek returns the Sunday on or after t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// Interval is the first and last day shown for date in view.
// A month view is padded to whole Monday-first weeks.
func Interval(date time.Time, view View) (time.Time, time.Time) {
	if view == ViewWeek {
		return StartOfWeek(date), EndOfWeek(date)
	}
	y, m, _ := date.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, date.Location())
	last := first.AddDate(0, 1, -1)
	return StartOfWeek(first), EndOfWeek(last)
}

// AddMonths moves t by n months, clamping the day to the target month's length.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return first.AddDate(0, 0, d-1)
}

// Step moves date one page forward (n=1) or back (n=-1) in view.
func Step(date time.Time, view View, n int) time.Time {
	if view == ViewWeek {
		return date.AddDate(0, 0, 7*n)
	}
	return AddMonths(date, n)
}

// Days builds the grid for date in view, attaching records by full_date.
func Days(date, today time.Time, view View, records map[string]Record) []CalendarDay {
	start, end := Interval(date, view)
	today = midnight(today)

	var days []CalendarDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		day := CalendarDay{
			Date:           d,
			DateKey:        key,
			IsCurrentMonth: d.Year() == date.Year() && d.Month() == date.Month(),
			IsToday:        d.Equal(today),
		}
		if rec, ok := records[key]; ok {
			day.Record = &rec
		}
		days = append(days, day)
	}
	return days
}
