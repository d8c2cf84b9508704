package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Pending", Capitalize("PENDING"))
	assert.Equal(t, "Émile", Capitalize("éMILE"))
}

func TestFormatFromISO(t *testing.T) {
	assert.Equal(t, "09:05 AM", FormatTimeFromISO("2025-03-04T09:05:00Z"))
	assert.Equal(t, "01:30 PM", FormatTimeFromISO("2025-03-04T13:30:00.123456"))
	assert.Equal(t, NoTime, FormatTimeFromISO(""))
	assert.Equal(t, NoTime, FormatTimeFromISO("not a time"))

	assert.Equal(t, "04 Mar 2025", FormatDateFromISO("2025-03-04"))
	assert.Equal(t, "04 Mar 2025", FormatDateFromISO("2025-03-04T13:30:00+07:00"))
	assert.Equal(t, NoDate, FormatDateFromISO(""))
}

func TestFormatTime24ToAmPm(t *testing.T) {
	tests := map[string]string{
		"":         "",
		"00:15":    "12:15 AM",
		"09:05":    "09:05 AM",
		"12:00":    "12:00 PM",
		"13:30:00": "01:30 PM",
		"23:59":    "11:59 PM",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatTime24ToAmPm(in), in)
	}
}

func TestCalculateTotalHours(t *testing.T) {
	assert.Equal(t, "0", CalculateTotalHours("", "17:00"))
	assert.Equal(t, "8.5", CalculateTotalHours("09:00", "17:30"))
	assert.Equal(t, "0.3", CalculateTotalHours("09:00", "09:20"))
}

func TestStatusMetaOf(t *testing.T) {
	assert.Nil(t, StatusMetaOf(nil, "Regularization", "text-gray-500"))

	pending := "PENDING"
	assert.Equal(t, &StatusMeta{Text: "Regularization Pending", LabelClass: "text-amber-700"},
		StatusMetaOf(&pending, "Regularization", "text-gray-500"))

	rejected := "rejected"
	assert.Equal(t, "text-rose-700", StatusMetaOf(&rejected, "Leave", "x").LabelClass)

	other := "draft"
	assert.Equal(t, &StatusMeta{Text: "Leave", LabelClass: "x"}, StatusMetaOf(&other, "Leave", "x"))
}

func TestPaletteFor(t *testing.T) {
	p, ok := PaletteFor("rose")
	assert.True(t, ok)
	assert.Equal(t, "bg-rose-500", p.Bar)
	assert.Equal(t, "border-rose-100", p.Border)

	_, ok = PaletteFor("teal")
	assert.False(t, ok)
}
