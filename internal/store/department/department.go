package department

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

type Store struct {
	base.Status
	deps base.Deps

	mu          sync.RWMutex
	departments []employee.Department
}

func New(deps base.Deps) *Store {
	return &Store{deps: deps}
}

// listResponse accepts both a bare array and a paginated {results} object.
type listResponse []employee.Department

func (l *listResponse) UnmarshalJSON(data []byte) error {
	var list []employee.Department
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var page struct {
		Results []employee.Department `json:"results"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return err
	}
	*l = page.Results
	return nil
}

// FetchDepartments loads /api/departments/. On failure the list is emptied.
func (s *Store) FetchDepartments(ctx context.Context) ([]employee.Department, error) {
	s.Begin()
	defer s.End()

	var resp listResponse
	if err := s.deps.API.Do(ctx, "/api/departments/", apiclient.Options{Method: http.MethodGet}, &resp); err != nil {
		s.set(nil)
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch departments")
	}
	s.set(resp)
	return s.Departments(), nil
}

func (s *Store) set(list []employee.Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if list == nil {
		list = []employee.Department{}
	}
	s.departments = list
}

func (s *Store) Departments() []employee.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]employee.Department(nil), s.departments...)
}

// Options lists active departments for a select input.
func (s *Store) Options() []employee.DepartmentOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	opts := []employee.DepartmentOption{}
	for _, d := range s.departments {
		if d.Active() {
			opts = append(opts, employee.DepartmentOption{Label: d.Name, Value: d.ID})
		}
	}
	return opts
}
