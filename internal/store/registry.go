// Package store holds the per-session domain stores.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/audit"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/dashboard"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/department"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/document"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/employee"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/holiday"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/interview"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/inventory"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/leave"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/payroll"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/settings"
)

// Set is every store of one session.
type Set struct {
	Loader *base.Loader

	Auth            *auth.Store
	Employee        *employee.Store
	EmployeeContext *employee.ContextStore
	Department      *department.Store
	Leave           *leave.Store
	Attendance      *attendance.Store
	Holiday         *holiday.Store
	Dashboard       *dashboard.Store
	Inventory       *inventory.Store
	Audit           *audit.Store
	Payroll         *payroll.Store
	Document        *document.Store
	Interview       *interview.Store
	Settings        *settings.Store
}

func NewSet(deps base.Deps) *Set {
	if deps.Loader == nil {
		deps.Loader = &base.Loader{}
	}
	return &Set{
		Loader:          deps.Loader,
		Auth:            auth.New(deps),
		Employee:        employee.New(deps),
		EmployeeContext: employee.NewContext(deps),
		Department:      department.New(deps),
		Leave:           leave.New(deps),
		Attendance:      attendance.New(deps),
		Holiday:         holiday.New(deps),
		Dashboard:       dashboard.New(deps),
		Inventory:       inventory.New(deps),
		Audit:           audit.New(deps),
		Payroll:         payroll.New(deps),
		Document:        document.New(deps),
		Interview:       interview.New(deps),
		Settings:        settings.New(deps),
	}
}

// Registry keeps one Set per session, created on first use.
type Registry struct {
	api       base.API
	interview base.API
	notifier  notify.Notifier

	mu   sync.Mutex
	sets map[string]*Set
}

func NewRegistry(api, interview base.API, notifier notify.Notifier) *Registry {
	return &Registry{
		api:       api,
		interview: interview,
		notifier:  notifier,
		sets:      make(map[string]*Set),
	}
}

// Get returns the session's Set, creating it when missing.
func (r *Registry) Get(sessionID string) *Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.sets[sessionID]; ok {
		return set
	}
	set := NewSet(base.Deps{
		API:       r.api,
		Interview: r.interview,
		Notifier:  r.notifier,
		Loader:    &base.Loader{},
	})
	r.sets[sessionID] = set
	return set
}

// FromContext returns the Set of the session in ctx.
func (r *Registry) FromContext(ctx context.Context) (*Set, error) {
	id, ok := session.IDFromContext(ctx)
	if !ok {
		return nil, session.ErrNoSession
	}
	return r.Get(id), nil
}

// Reset discards the session's stores.
func (r *Registry) Reset(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, sessionID)
}

// Sessions lists the sessions that currently hold a Set.
func (r *Registry) Sessions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.sets))
	for id := range r.sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sets)
}
