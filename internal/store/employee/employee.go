package employee

import (
	"context"
	"net/http"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

// Store holds the signed-in user's own employee record.
type Store struct {
	base.Status
	deps base.Deps

	mu       sync.RWMutex
	employee *employee.Employee
}

func New(deps base.Deps) *Store {
	return &Store{deps: deps}
}

// FetchMe loads /api/employees/me/. On failure the record is cleared.
func (s *Store) FetchMe(ctx context.Context) (*employee.Employee, error) {
	s.Begin()
	defer s.End()

	var e employee.Employee
	if err := s.deps.API.Do(ctx, "/api/employees/me/", apiclient.Options{Method: http.MethodGet}, &e); err != nil {
		s.mu.Lock()
		s.employee = nil
		s.mu.Unlock()
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to load employee")
	}

	s.mu.Lock()
	s.employee = &e
	s.mu.Unlock()
	return s.Employee(), nil
}

// Employee returns a copy of the loaded record, or nil.
func (s *Store) Employee() *employee.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.employee == nil {
		return nil
	}
	e := *s.employee
	return &e
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.employee != nil
}

func (s *Store) FullName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.employee == nil {
		return ""
	}
	return s.employee.FullName
}

func (s *Store) DepartmentName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.employee == nil || s.employee.DepartmentDetail == nil {
		return ""
	}
	return s.employee.DepartmentDetail.Name
}

func (s *Store) DesignationName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.employee == nil || s.employee.DesignationDetail == nil {
		return ""
	}
	return s.employee.DesignationDetail.Name
}

// ManagerName is the manager of the employee's department.
func (s *Store) ManagerName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.employee == nil || s.employee.DepartmentDetail == nil {
		return ""
	}
	return s.employee.DepartmentDetail.ManagerName
}

func (s *Store) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.employee != nil && s.employee.IsActive
}

// Clear drops the record and error.
func (s *Store) Clear() {
	s.mu.Lock()
	s.employee = nil
	s.mu.Unlock()
	s.Reset()
}

// Update applies a local patch of JSON fields. It is a no-op when nothing is loaded.
func (s *Store) Update(patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.employee == nil {
		return nil
	}
	merged, err := employee.Merge(*s.employee, patch)
	if err != nil {
		return err
	}
	s.employee = &merged
	return nil
}
