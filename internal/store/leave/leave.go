package leave

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

type Store struct {
	base.Status
	deps base.Deps

	mu                      sync.RWMutex
	requests                []leave.Request
	pending                 []leave.PendingRequest
	balances                leave.Balances
	employeeBalances        []leave.EmployeeBalance
	employeeBalancesLoading bool
}

func New(deps base.Deps) *Store {
	return &Store{deps: deps, balances: leave.Balances{}}
}

func userParams(userID int) url.Values {
	params := url.Values{}
	if userID > 0 {
		params.Set("userid", strconv.Itoa(userID))
	}
	return params
}

// FetchLeaves loads the leave requests of userID, or of the current user when userID is 0.
func (s *Store) FetchLeaves(ctx context.Context, userID int) ([]leave.Request, error) {
	s.SetError("")
	defer s.deps.Loader.Track()()

	var resp leave.ListResponse
	if err := s.deps.API.Get(ctx, "/api/leaves/", userParams(userID), &resp); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch leave requests")
	}

	s.mu.Lock()
	s.requests = resp.Results
	s.mu.Unlock()
	return s.Requests(), nil
}

// FetchBalances loads leave balances keyed by leave type. A non-zero
// envelope error leaves the stored balances untouched.
func (s *Store) FetchBalances(ctx context.Context, userID int) (leave.Balances, error) {
	s.SetError("")
	defer s.deps.Loader.Track()()

	var resp leave.BalanceResponse
	if err := s.deps.API.Get(ctx, "/api/leaves/balance/", userParams(userID), &resp); err != nil {
		return leave.Balances{}, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch leave balances")
	}
	if resp.Error != 0 {
		return leave.Balances{}, nil
	}

	s.mu.Lock()
	s.balances = resp.Data
	s.mu.Unlock()
	return s.Balances(), nil
}

// Apply submits a leave request, then refreshes requests and balances.
func (s *Store) Apply(ctx context.Context, req leave.ApplyRequest) error {
	if err := req.Validate(); err != nil {
		s.SetError(err.Error())
		return err
	}

	s.Begin()
	defer s.End()

	if err := s.deps.API.Do(ctx, "/api/leaves/", apiclient.Options{Method: http.MethodPost, Body: req}, nil); err != nil {
		return s.Fail(ctx, s.deps.Notifier, err, "Failed to submit leave request")
	}
	if _, err := s.FetchLeaves(ctx, 0); err != nil {
		return err
	}
	if _, err := s.FetchBalances(ctx, 0); err != nil {
		return err
	}

	s.deps.Notifier.Add(ctx, notify.Success("Leave request submitted successfully"))
	return nil
}

// Update changes a request's status. Rejections carry the default reason.
func (s *Store) Update(ctx context.Context, id int, status string) error {
	s.Begin()
	defer s.End()

	path := fmt.Sprintf("/api/leaves/%d/", id)
	body := leave.NewStatusPatch(status)
	if err := s.deps.API.Do(ctx, path, apiclient.Options{Method: http.MethodPatch, Body: body}, nil); err != nil {
		return s.Fail(ctx, s.deps.Notifier, apiclient.AsNotFound(err, leave.ErrRequestNotFound), "Failed to update leave request")
	}
	if _, err := s.FetchLeaves(ctx, 0); err != nil {
		return err
	}
	if _, err := s.FetchBalances(ctx, 0); err != nil {
		return err
	}

	s.deps.Notifier.Add(ctx, notify.Success("Leave request updated successfully"))
	return nil
}

// UpdateWithReason changes a request's status from the approval queue and refreshes it.
func (s *Store) UpdateWithReason(ctx context.Context, id int, status, reason string) error {
	s.Begin()
	defer s.End()

	path := fmt.Sprintf("/api/leaves/%d/", id)
	body := leave.NewStatusPatchWithReason(status, reason)
	if err := s.deps.API.Do(ctx, path, apiclient.Options{Method: http.MethodPatch, Body: body}, nil); err != nil {
		return s.Fail(ctx, s.deps.Notifier, apiclient.AsNotFound(err, leave.ErrRequestNotFound), "Failed to update leave request")
	}
	if _, err := s.FetchPending(ctx); err != nil {
		return err
	}

	s.deps.Notifier.Add(ctx, notify.Success(fmt.Sprintf("Leave request %s successfully", strings.ToLower(status))))
	return nil
}

var pendingParams = url.Values{"status": {leave.StatusPending}}

// FetchPending loads requests awaiting approval.
func (s *Store) FetchPending(ctx context.Context) ([]leave.PendingRequest, error) {
	s.SetError("")
	defer s.deps.Loader.Track()()

	var resp struct {
		Results []leave.PendingRequest `json:"results"`
	}
	if err := s.deps.API.Get(ctx, "/api/leaves/all/", pendingParams, &resp); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch pending leave requests")
	}

	s.mu.Lock()
	s.pending = resp.Results
	s.mu.Unlock()
	return s.Pending(), nil
}

// PendingCount refreshes the approval queue and returns its size. Errors yield 0 silently.
func (s *Store) PendingCount(ctx context.Context) int {
	var resp struct {
		Results []leave.PendingRequest `json:"results"`
	}
	if err := s.deps.API.Get(ctx, "/api/leaves/all/", pendingParams, &resp); err != nil {
		return 0
	}

	s.mu.Lock()
	s.pending = resp.Results
	s.mu.Unlock()
	return len(resp.Results)
}

// FetchAllEmployeeBalances loads every employee's balances for HR.
func (s *Store) FetchAllEmployeeBalances(ctx context.Context) ([]leave.EmployeeBalance, error) {
	s.mu.Lock()
	s.employeeBalancesLoading = true
	s.mu.Unlock()
	s.SetError("")
	defer func() {
		s.mu.Lock()
		s.employeeBalancesLoading = false
		s.mu.Unlock()
	}()
	defer s.deps.Loader.Track()()

	var resp leave.EmployeeBalancesResponse
	if err := s.deps.API.Get(ctx, "/api/leaves/all-balances/", nil, &resp); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch employee leave balances")
	}
	if resp.Error != 0 {
		return nil, s.FailWith(ctx, s.deps.Notifier, leave.ErrBalancesUnavailable, "Failed to fetch employee leave balances")
	}

	s.mu.Lock()
	s.employeeBalances = resp.Data
	s.mu.Unlock()
	return s.EmployeeBalances(), nil
}

// ExportBalances writes the loaded employee balances as an xlsx workbook.
func (s *Store) ExportBalances(w io.Writer) error {
	return export.LeaveBalances(w, s.EmployeeBalances())
}

func (s *Store) Requests() []leave.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]leave.Request(nil), s.requests...)
}

func (s *Store) Pending() []leave.PendingRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]leave.PendingRequest(nil), s.pending...)
}

// PendingLen is the size of the last loaded approval queue.
func (s *Store) PendingLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pending)
}

func (s *Store) Balances() leave.Balances {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(leave.Balances, len(s.balances))
	for k, v := range s.balances {
		out[k] = v
	}
	return out
}

func (s *Store) EmployeeBalances() []leave.EmployeeBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]leave.EmployeeBalance(nil), s.employeeBalances...)
}

func (s *Store) EmployeeBalancesLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.employeeBalancesLoading
}

// SetData replaces requests and balances, e.g. from a server-side prefetch.
func (s *Store) SetData(requests []leave.Request, balances leave.Balances) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = requests
	s.balances = balances
}
