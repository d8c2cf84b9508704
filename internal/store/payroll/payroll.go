package payroll

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
	"github.com/shopspring/decimal"
)

type Store struct {
	base.Status
	deps base.Deps

	mu         sync.RWMutex
	records    []payroll.Record
	selectedID string
	annualCTC  decimal.Decimal
}

func New(deps base.Deps) *Store {
	return &Store{deps: deps}
}

// FetchRecords loads salary history. The newest record is selected unless a
// previous selection is still present.
func (s *Store) FetchRecords(ctx context.Context) ([]payroll.Record, error) {
	s.Begin()
	defer s.End()

	var resp payroll.ListResponse
	if err := s.deps.API.Get(ctx, "/api/payroll/salary-records/", nil, &resp); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch salary records")
	}

	s.mu.Lock()
	s.records = resp.Results
	s.annualCTC = resp.AnnualCTC
	if _, ok := s.find(s.selectedID); !ok && len(s.records) > 0 {
		s.selectedID = s.records[0].ID
	}
	s.mu.Unlock()
	return s.Records(), nil
}

func (s *Store) find(id string) (payroll.Record, bool) {
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return payroll.Record{}, false
}

func (s *Store) Records() []payroll.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]payroll.Record(nil), s.records...)
}

func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

// Selected returns the selected record, falling back to the first one.
func (s *Store) Selected() (payroll.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.find(s.selectedID); ok {
		return r, true
	}
	if len(s.records) > 0 {
		return s.records[0], true
	}
	return payroll.Record{}, false
}

func (s *Store) AnnualCTC() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.annualCTC
}
