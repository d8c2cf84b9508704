package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	NoTime = "--:--"
	NoDate = "--"
)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseISO parses the ISO-8601 variants the backend emits.
func ParseISO(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + strings.ToLower(s[size:])
}

// FormatTimeFromISO renders "hh:mm AM", or NoTime when s is empty or invalid.
func FormatTimeFromISO(s string) string {
	t, ok := ParseISO(s)
	if !ok {
		return NoTime
	}
	return t.Format("03:04 PM")
}

// FormatDateFromISO renders "02 Jan 2006", or NoDate when s is empty or invalid.
func FormatDateFromISO(s string) string {
	t, ok := ParseISO(s)
	if !ok {
		return NoDate
	}
	return t.Format("02 Jan 2006")
}

func clockParts(s string) (int, int) {
	parts := strings.Split(s, ":")
	h, _ := strconv.Atoi(parts[0])
	m := 0
	if len(parts) > 1 {
		m, _ = strconv.Atoi(parts[1])
	}
	return h, m
}

// FormatTime24ToAmPm turns "13:05[:ss]" into "01:05 PM".
func FormatTime24ToAmPm(s string) string {
	if s == "" {
		return ""
	}
	h, m := clockParts(s)
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%02d:%02d %s", display, m, ampm)
}

// CalculateTotalHours returns the hours between two "HH:MM" clock times with one decimal.
func CalculateTotalHours(clockIn, clockOut string) string {
	if clockIn == "" || clockOut == "" {
		return "0"
	}
	inH, inM := clockParts(clockIn)
	outH, outM := clockParts(clockOut)
	diff := (outH*60 + outM) - (inH*60 + inM)
	return strconv.FormatFloat(float64(diff)/60, 'f', 1, 64)
}

type StatusMeta struct {
	Text       string `json:"text"`
	LabelClass string `json:"labelClass"`
}

var statusClasses = map[string]string{
	"pending":  "text-amber-700",
	"approved": "text-emerald-700",
	"rejected": "text-rose-700",
}

// StatusMetaOf labels a submission status. A nil status means no submission.
func StatusMetaOf(status *string, baseLabel, baseClass string) *StatusMeta {
	if status == nil {
		return nil
	}
	key := strings.ToLower(*status)
	if class, ok := statusClasses[key]; ok {
		return &StatusMeta{Text: baseLabel + " " + Capitalize(key), LabelClass: class}
	}
	return &StatusMeta{Text: baseLabel, LabelClass: baseClass}
}

// Palette is the set of utility classes drawn for one accent colour.
type Palette struct {
	IconBg   string `json:"iconBg"`
	IconText string `json:"iconText"`
	Bar      string `json:"bar"`
	SoftBg   string `json:"softBg"`
	SoftText string `json:"softText"`
	Border   string `json:"border"`
}

var paletteColors = []string{"indigo", "rose", "amber", "emerald"}

// PaletteFor returns the palette of one of the accent colours.
func PaletteFor(color string) (Palette, bool) {
	for _, c := range paletteColors {
		if c == color {
			return Palette{
				IconBg:   "bg-" + c + "-50",
				IconText: "text-" + c + "-600",
				Bar:      "bg-" + c + "-500",
				SoftBg:   "bg-" + c + "-50",
				SoftText: "text-" + c + "-600",
				Border:   "border-" + c + "-100",
			}, true
		}
	}
	return Palette{}, false
}
