package holiday

import (
	"strings"
	"time"
)

const (
	TypePublic     = "Public"
	TypeRestricted = "Restricted"

	StatusUpcoming = "Upcoming"
	StatusPassed   = "Passed"

	FilterAll        = "all"
	FilterPublic     = "public"
	FilterRestricted = "restricted"
)

// Raw is a holiday as returned by GET /api/holidays/.
type Raw struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	HolidayType string `json:"holiday_type"`
}

type ListResponse struct {
	Results []Raw `json:"results"`
}

// Holiday is the list view of a holiday.
type Holiday struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	FullDate string `json:"fullDate"`
	Day      string `json:"day"`
	Type     string `json:"type"`
	Icon     string `json:"icon"`
	Status   string `json:"status"`
}

// NormalizeType maps a backend holiday_type onto Public or Restricted.
func NormalizeType(t string) string {
	if strings.EqualFold(strings.TrimSpace(t), TypeRestricted) {
		return TypeRestricted
	}
	return TypePublic
}

// Icon picks a display icon from the holiday name.
func Icon(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "year"):
		return "i-lucide-music"
	case strings.Contains(n, "republic"), strings.Contains(n, "independence"):
		return "i-lucide-sparkles"
	case strings.Contains(n, "christmas"):
		return "i-lucide-calendar"
	case strings.Contains(n, "gandhi"), strings.Contains(n, "foundation"):
		return "i-lucide-heart"
	default:
		return "i-lucide-map-pin"
	}
}

// Normalize builds the view of r. Dates before today's midnight are Passed.
func Normalize(r Raw, today time.Time) Holiday {
	h := Holiday{
		ID:       r.ID,
		Name:     r.Name,
		Date:     r.Date,
		FullDate: r.Date,
		Type:     NormalizeType(r.HolidayType),
		Icon:     Icon(r.Name),
		Status:   StatusUpcoming,
	}

	y, m, d := today.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	if date, err := time.ParseInLocation(time.DateOnly, r.Date, today.Location()); err == nil {
		h.Date = date.Format("Jan 02")
		h.Day = date.Weekday().String()
		if date.Before(midnight) {
			h.Status = StatusPassed
		}
	}
	return h
}

// Raw converts a view back to its backend shape.
func (h Holiday) Raw() Raw {
	return Raw{ID: h.ID, Name: h.Name, Date: h.FullDate, HolidayType: h.Type}
}

// Matches reports whether h passes the type filter and case-insensitive name search.
func (h Holiday) Matches(filter, search string) bool {
	if filter != "" && filter != FilterAll && strings.ToLower(h.Type) != filter {
		return false
	}
	return strings.Contains(strings.ToLower(h.Name), strings.ToLower(search))
}
