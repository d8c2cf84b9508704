package dashboard

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

type Store struct {
	base.Status
	deps base.Deps

	mu   sync.RWMutex
	data *dashboard.Summary
}

func New(deps base.Deps) *Store {
	return &Store{deps: deps}
}

// FetchSummary loads the dashboard cards. A non-zero envelope error keeps the previous data.
func (s *Store) FetchSummary(ctx context.Context) error {
	s.Begin()
	defer s.End()

	var resp dashboard.SummaryResponse
	if err := s.deps.API.Get(ctx, "/api/dashboard/summary/", nil, &resp); err != nil {
		return s.Fail(ctx, s.deps.Notifier, err, "An error occurred")
	}
	if resp.Error != 0 || resp.Data == nil {
		return s.FailWith(ctx, s.deps.Notifier, dashboard.ErrSummaryUnavailable, "Failed to fetch dashboard data")
	}

	s.mu.Lock()
	s.data = resp.Data
	s.mu.Unlock()
	return nil
}

func (s *Store) Overview() *dashboard.Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil
	}
	return s.data.Overview
}

func (s *Store) UpcomingHolidays() []dashboard.Holiday {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return []dashboard.Holiday{}
	}
	return append([]dashboard.Holiday{}, s.data.UpcomingHolidays...)
}

func (s *Store) LeaveBreakdown() []dashboard.LeaveBreakdownItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil || s.data.LeaveChart == nil {
		return []dashboard.LeaveBreakdownItem{}
	}
	return append([]dashboard.LeaveBreakdownItem{}, s.data.LeaveChart.Breakdown...)
}

func (s *Store) Performance() *dashboard.PerformanceWidget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil
	}
	return s.data.PerformanceWidget
}
