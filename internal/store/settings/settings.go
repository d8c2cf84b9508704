package settings

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/settings"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

const permissionsPath = "/api/organizations/permissions/"

// Store holds the editable permission matrix of the settings page.
type Store struct {
	base.Status
	deps base.Deps

	mu        sync.RWMutex
	matrix    settings.Matrix
	saved     settings.Matrix
	selected  string
	employees []employee.Lookup
}

func New(deps base.Deps) *Store {
	m := settings.DefaultMatrix()
	return &Store{deps: deps, matrix: m, saved: m.Clone()}
}

// SetEmployees replaces the list the employee search runs over.
func (s *Store) SetEmployees(list []employee.Lookup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = append([]employee.Lookup{}, list...)
}

// SearchEmployees matches names case-insensitively. An empty query matches nothing.
func (s *Store) SearchEmployees(query string) []employee.Lookup {
	out := []employee.Lookup{}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return out
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.employees {
		if strings.Contains(strings.ToLower(e.FullName), query) {
			out = append(out, e)
		}
	}
	return out
}

// SelectEmployee switches the matrix being edited. "" selects the global defaults.
func (s *Store) SelectEmployee(employeeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = employeeID
}

func (s *Store) SelectedEmployee() (employee.Lookup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.employees {
		if s.selected != "" && e.EmployeeID == s.selected {
			return e, true
		}
	}
	return employee.Lookup{}, false
}

func (s *Store) key() string {
	if s.selected == "" {
		return settings.GlobalKey
	}
	return s.selected
}

// Current returns the rows of the selected employee, or the global rows.
func (s *Store) Current() []settings.Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matrix.Rows(s.key())
}

// Toggle flips one permission. An employee without overrides starts from a copy of the global rows.
func (s *Store) Toggle(idx int, field settings.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.key()
	rows, ok := s.matrix[key]
	if !ok {
		rows = s.matrix.Rows(settings.GlobalKey)
	}
	if idx < 0 || idx >= len(rows) {
		return settings.ErrRowOutOfRange
	}
	if !rows[idx].Toggle(field) {
		return settings.ErrUnknownField
	}
	s.matrix[key] = rows
	return nil
}

// Dirty reports unsaved changes.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.matrix.Equal(s.saved)
}

// Save sends the matrix upstream and makes it the new baseline.
func (s *Store) Save(ctx context.Context) error {
	s.Begin()
	defer s.End()

	s.mu.RLock()
	snapshot := s.matrix.Clone()
	s.mu.RUnlock()

	opts := apiclient.Options{Method: http.MethodPut, Body: settings.SaveRequest{Permissions: snapshot}}
	if err := s.deps.API.Do(ctx, permissionsPath, opts, nil); err != nil {
		return s.Fail(ctx, s.deps.Notifier, err, "Failed to save permissions")
	}

	s.mu.Lock()
	s.saved = snapshot
	s.mu.Unlock()

	s.deps.Notifier.Add(ctx, notify.Toast{Title: "Changes Saved", Color: notify.ColorSuccess})
	return nil
}

// Matrix returns a copy of the working matrix.
func (s *Store) Matrix() settings.Matrix {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matrix.Clone()
}
