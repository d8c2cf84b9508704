package attendance

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

// Store holds the calendar page of the current user's attendance.
type Store struct {
	base.Status
	deps base.Deps
	now  func() time.Time

	mu      sync.RWMutex
	current time.Time
	view    attendance.View
	records map[string]attendance.Record
}

func New(deps base.Deps) *Store {
	return NewWithClock(deps, time.Now)
}

// NewWithClock is New with a custom clock for today and the initial page.
func NewWithClock(deps base.Deps, now func() time.Time) *Store {
	return &Store{
		deps:    deps,
		now:     now,
		current: now(),
		view:    attendance.ViewMonth,
		records: map[string]attendance.Record{},
	}
}

// FetchRange loads records for the visible grid.
func (s *Store) FetchRange(ctx context.Context) error {
	s.Begin()
	defer s.End()
	defer s.deps.Loader.Track()()

	s.mu.RLock()
	start, end := attendance.Interval(s.current, s.view)
	s.mu.RUnlock()

	params := url.Values{}
	params.Set("start_date", start.Format(attendance.DateLayout))
	params.Set("end_date", end.Format(attendance.DateLayout))

	var resp attendance.ListResponse
	if err := s.deps.API.Get(ctx, "/api/attendance/my-attendance/", params, &resp); err != nil {
		s.mu.Lock()
		s.records = map[string]attendance.Record{}
		s.mu.Unlock()
		return s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch attendance")
	}

	records := make(map[string]attendance.Record, len(resp.Results.Data))
	for _, rec := range resp.Results.Data {
		records[rec.FullDate] = rec
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return nil
}

func (s *Store) step(ctx context.Context, n int) error {
	s.mu.Lock()
	s.current = attendance.Step(s.current, s.view, n)
	s.mu.Unlock()
	return s.FetchRange(ctx)
}

// Next moves one month or week forward and refetches.
func (s *Store) Next(ctx context.Context) error {
	return s.step(ctx, 1)
}

// Prev moves one month or week back and refetches.
func (s *Store) Prev(ctx context.Context) error {
	return s.step(ctx, -1)
}

// SetView switches between month and week and refetches.
func (s *Store) SetView(ctx context.Context, view attendance.View) error {
	if !view.Valid() {
		return attendance.ErrInvalidView
	}
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
	return s.FetchRange(ctx)
}

func (s *Store) View() attendance.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *Store) CurrentDate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) CalendarDays() []attendance.CalendarDay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return attendance.Days(s.current, s.now(), s.view, s.records)
}

// MonthLabel is the header label, e.g. "Dec 2025".
func (s *Store) MonthLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Format(attendance.LabelLayout)
}
