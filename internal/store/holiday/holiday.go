package holiday

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

type Store struct {
	base.Status
	deps base.Deps
	now  func() time.Time

	mu       sync.RWMutex
	holidays []holiday.Holiday
}

func New(deps base.Deps) *Store {
	return &Store{deps: deps, now: time.Now}
}

func (s *Store) FetchHolidays(ctx context.Context) ([]holiday.Holiday, error) {
	s.Begin()
	defer s.End()

	var resp holiday.ListResponse
	if err := s.deps.API.Get(ctx, "/api/holidays/", nil, &resp); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to load holidays")
	}

	today := s.now()
	list := make([]holiday.Holiday, 0, len(resp.Results))
	for _, r := range resp.Results {
		list = append(list, holiday.Normalize(r, today))
	}

	s.mu.Lock()
	s.holidays = list
	s.mu.Unlock()
	return s.Holidays(), nil
}

func (s *Store) Holidays() []holiday.Holiday {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]holiday.Holiday(nil), s.holidays...)
}

// Filtered returns holidays of the given type filter whose names contain search.
func (s *Store) Filtered(filter, search string) []holiday.Holiday {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []holiday.Holiday{}
	for _, h := range s.holidays {
		if h.Matches(filter, search) {
			out = append(out, h)
		}
	}
	return out
}

// Next returns the first upcoming holiday in backend order.
func (s *Store) Next() (holiday.Holiday, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.holidays {
		if h.Status == holiday.StatusUpcoming {
			return h, true
		}
	}
	return holiday.Holiday{}, false
}
