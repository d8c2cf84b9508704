package holiday

import (
	"net/http"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_FetchHolidays(t *testing.T) {
	b := storetest.New(t)
	b.JSON("GET /api/holidays/", map[string]any{
		"results": []map[string]any{
			{"id": 1, "name": "New Year", "date": "2025-01-01", "holiday_type": "public"},
			{"id": 2, "name": "Republic Day", "date": "2025-01-26", "holiday_type": "restricted"},
			{"id": 3, "name": "Christmas", "date": "2025-12-25", "holiday_type": "public"},
		},
	})

	s := New(b.Deps)
	s.now = func() time.Time { return time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC) }

	list, err := s.FetchHolidays(storetest.Ctx())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, holiday.StatusPassed, list[0].Status)
	assert.Empty(t, s.Error())

	next, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, "Republic Day", next.Name)

	assert.Len(t, s.Filtered(holiday.FilterAll, ""), 3)
	assert.Len(t, s.Filtered(holiday.FilterPublic, ""), 2)
	restricted := s.Filtered(holiday.FilterRestricted, "REPUBLIC")
	require.Len(t, restricted, 1)
	assert.Equal(t, 2, restricted[0].ID)
	assert.Empty(t, s.Filtered(holiday.FilterAll, "diwali"))
}

func TestStore_FetchHolidaysFailure(t *testing.T) {
	b := storetest.New(t)
	b.Fail("GET /api/holidays/", http.StatusBadGateway, nil)

	s := New(b.Deps)
	_, err := s.FetchHolidays(storetest.Ctx())
	require.Error(t, err)
	assert.Equal(t, "Failed to load holidays", s.Error())
	_, ok := s.Next()
	assert.False(t, ok)
}
