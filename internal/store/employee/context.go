package employee

import (
	"context"
	"net/http"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

// ContextStore tracks which employee a super user is viewing.
type ContextStore struct {
	base.Status
	deps base.Deps

	mu       sync.RWMutex
	lookups  []employee.Lookup
	selected *int
}

func NewContext(deps base.Deps) *ContextStore {
	return &ContextStore{deps: deps}
}

type lookupResponse struct {
	Data []employee.Lookup `json:"data"`
}

// FetchLookupList loads the selectable employees. A fetch already in flight is not repeated.
func (s *ContextStore) FetchLookupList(ctx context.Context) ([]employee.Lookup, error) {
	if s.Loading() {
		return s.Lookups(), nil
	}
	s.Begin()
	defer s.End()

	var resp lookupResponse
	if err := s.deps.API.Do(ctx, "/api/employees/lookup-list/", apiclient.Options{Method: http.MethodGet}, &resp); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch employee list")
	}

	s.mu.Lock()
	s.lookups = resp.Data
	if s.lookups == nil {
		s.lookups = []employee.Lookup{}
	}
	s.mu.Unlock()
	return s.Lookups(), nil
}

func (s *ContextStore) Lookups() []employee.Lookup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]employee.Lookup(nil), s.lookups...)
}

func (s *ContextStore) Select(employeeID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &employeeID
}

func (s *ContextStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// SelectedID returns the selected employee ID.
func (s *ContextStore) SelectedID() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return 0, false
	}
	return *s.selected, true
}

func (s *ContextStore) IsViewingOther() bool {
	_, ok := s.SelectedID()
	return ok
}

// ActiveEmployee returns the selected employee's lookup row, if loaded.
func (s *ContextStore) ActiveEmployee() (employee.Lookup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return employee.Lookup{}, false
	}
	for _, l := range s.lookups {
		if l.ID == *s.selected {
			return l, true
		}
	}
	return employee.Lookup{}, false
}

func (s *ContextStore) Options() []employee.Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	opts := make([]employee.Option, 0, len(s.lookups))
	for _, l := range s.lookups {
		opts = append(opts, l.Option())
	}
	return opts
}
