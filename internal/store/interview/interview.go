package interview

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/interview"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

// Store backs the recruitment pages. It talks to the interview API only.
type Store struct {
	base.Status
	deps base.Deps

	mu         sync.RWMutex
	jobs       []interview.Job
	candidates []interview.CandidateListItem
	selected   *interview.CandidateDetail
	invites    []interview.Invite
}

func New(deps base.Deps) *Store {
	return &Store{deps: deps}
}

func jobPath(id string) string {
	return "/api/jobs/" + url.PathEscape(id)
}

func candidatePath(id string) string {
	return "/api/candidates/" + url.PathEscape(id)
}

// ========== Jobs ==========

func (s *Store) FetchJobs(ctx context.Context) ([]interview.Job, error) {
	defer s.deps.Loader.Track()()
	s.Begin()
	defer s.End()

	var jobs []interview.Job
	if err := s.deps.Interview.Get(ctx, "/api/jobs", nil, &jobs); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch jobs")
	}

	s.mu.Lock()
	s.jobs = jobs
	s.mu.Unlock()
	return s.Jobs(), nil
}

func (s *Store) FetchJobByID(ctx context.Context, id string) (*interview.Job, error) {
	s.Begin()
	defer s.End()

	var job interview.Job
	if err := s.deps.Interview.Get(ctx, jobPath(id), nil, &job); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, apiclient.AsNotFound(err, interview.ErrJobNotFound), "Failed to fetch job details")
	}
	return &job, nil
}

// CreateJob adds a job and puts it first in the list.
func (s *Store) CreateJob(ctx context.Context, req interview.JobRequest) (*interview.Job, error) {
	if err := req.Validate(); err != nil {
		s.SetError(err.Error())
		return nil, err
	}

	s.Begin()
	defer s.End()

	var job interview.Job
	opts := apiclient.Options{Method: http.MethodPost, Body: req}
	if err := s.deps.Interview.Do(ctx, "/api/jobs", opts, &job); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to create job")
	}

	s.mu.Lock()
	s.jobs = append([]interview.Job{job}, s.jobs...)
	s.mu.Unlock()

	s.deps.Notifier.Add(ctx, notify.Success("Job created successfully"))
	return &job, nil
}

func (s *Store) UpdateJob(ctx context.Context, id string, req interview.JobRequest) (*interview.Job, error) {
	if err := req.Validate(); err != nil {
		s.SetError(err.Error())
		return nil, err
	}

	s.Begin()
	defer s.End()

	var job interview.Job
	opts := apiclient.Options{Method: http.MethodPut, Body: req}
	if err := s.deps.Interview.Do(ctx, jobPath(id), opts, &job); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to update job")
	}

	s.mu.Lock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			s.jobs[i] = job
			break
		}
	}
	s.mu.Unlock()

	s.deps.Notifier.Add(ctx, notify.Success("Job updated successfully"))
	return &job, nil
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	s.Begin()
	defer s.End()

	if err := s.deps.Interview.Do(ctx, jobPath(id), apiclient.Options{Method: http.MethodDelete}, nil); err != nil {
		return s.Fail(ctx, s.deps.Notifier, err, "Failed to delete job")
	}

	s.mu.Lock()
	kept := s.jobs[:0:0]
	for _, j := range s.jobs {
		if j.ID != id {
			kept = append(kept, j)
		}
	}
	s.jobs = kept
	s.mu.Unlock()

	s.deps.Notifier.Add(ctx, notify.Success("Job deleted successfully"))
	return nil
}

// ========== Candidates ==========

func (s *Store) FetchCandidates(ctx context.Context) ([]interview.CandidateListItem, error) {
	defer s.deps.Loader.Track()()
	s.Begin()
	defer s.End()

	var list []interview.CandidateListItem
	if err := s.deps.Interview.Get(ctx, "/api/candidates", nil, &list); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch candidates")
	}

	s.mu.Lock()
	s.candidates = list
	s.mu.Unlock()
	return s.Candidates(), nil
}

// FetchCandidateByID loads a candidate and makes it the selected one.
func (s *Store) FetchCandidateByID(ctx context.Context, id string) (*interview.CandidateDetail, error) {
	s.Begin()
	defer s.End()

	var c interview.CandidateDetail
	if err := s.deps.Interview.Get(ctx, candidatePath(id), nil, &c); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch candidate details")
	}

	s.mu.Lock()
	s.selected = &c
	s.mu.Unlock()
	return s.SelectedCandidate(), nil
}

func (s *Store) ClearSelectedCandidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// UpdateCandidateStatus records a hiring decision. The backend emails the candidate.
func (s *Store) UpdateCandidateStatus(ctx context.Context, id string, req interview.StatusRequest) error {
	if err := req.Normalize(); err != nil {
		s.SetError(err.Error())
		return err
	}

	s.Begin()
	defer s.End()

	path := candidatePath(id) + "/status"
	if err := s.deps.Interview.Do(ctx, path, apiclient.Options{Method: http.MethodPut, Body: req}, nil); err != nil {
		return s.Fail(ctx, s.deps.Notifier, err, "Failed to update candidate status")
	}

	s.mu.RLock()
	refetch := s.selected != nil && s.selected.ID == id
	s.mu.RUnlock()
	if refetch {
		if _, err := s.FetchCandidateByID(ctx, id); err != nil {
			return err
		}
	}

	title, desc := interview.StatusToast(req.Status)
	s.deps.Notifier.Add(ctx, notify.Toast{Title: title, Description: desc, Color: notify.ColorSuccess})
	return nil
}

// ========== Invites ==========

func (s *Store) FetchInvites(ctx context.Context, issuedBy string) ([]interview.Invite, error) {
	s.Begin()
	defer s.End()

	var list []interview.Invite
	params := url.Values{"issued_by": {issuedBy}}
	if err := s.deps.Interview.Get(ctx, "/api/invites", params, &list); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch invites")
	}

	s.mu.Lock()
	s.invites = list
	s.mu.Unlock()
	return s.Invites(), nil
}

// CreateInvite invites every non-blank email. Nothing is sent when none remain.
func (s *Store) CreateInvite(ctx context.Context, req interview.InviteRequest) ([]interview.Invite, error) {
	emails := req.CleanEmails()
	if len(emails) == 0 {
		return []interview.Invite{}, nil
	}
	if req.IssuedBy == "" {
		s.SetError(interview.ErrMissingIssuer.Error())
		return nil, interview.ErrMissingIssuer
	}

	s.Begin()
	defer s.End()

	var created interview.Invites
	path, body := req.Route(emails)
	if err := s.deps.Interview.Do(ctx, path, apiclient.Options{Method: http.MethodPost, Body: body}, &created); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to send invite")
	}

	s.mu.Lock()
	s.invites = append(append([]interview.Invite{}, created...), s.invites...)
	s.mu.Unlock()

	s.deps.Notifier.Add(ctx, notify.Success(fmt.Sprintf("%d invite(s) sent successfully", len(created))))
	return []interview.Invite(created), nil
}

// UpdateInviteStatus changes an invite locally.
func (s *Store) UpdateInviteStatus(ctx context.Context, id, status string) {
	s.mu.Lock()
	for i := range s.invites {
		if s.invites[i].ID == id {
			s.invites[i].Status = status
		}
	}
	s.mu.Unlock()
	s.deps.Notifier.Add(ctx, notify.Success("Invite status updated"))
}

// ========== Getters ==========

func (s *Store) Jobs() []interview.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]interview.Job{}, s.jobs...)
}

func (s *Store) jobsWithStatus(status string) []interview.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []interview.Job{}
	for _, j := range s.jobs {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out
}

func (s *Store) OpenJobs() []interview.Job {
	return s.jobsWithStatus(interview.JobOpen)
}

func (s *Store) ClosedJobs() []interview.Job {
	return s.jobsWithStatus(interview.JobClosed)
}

func (s *Store) Candidates() []interview.CandidateListItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]interview.CandidateListItem{}, s.candidates...)
}

func (s *Store) SelectedCandidate() *interview.CandidateDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil
	}
	c := *s.selected
	return &c
}

func (s *Store) Invites() []interview.Invite {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]interview.Invite{}, s.invites...)
}

func (s *Store) PendingInvites() []interview.Invite {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []interview.Invite{}
	for _, iv := range s.invites {
		if iv.Status == interview.InvitePending {
			out = append(out, iv)
		}
	}
	return out
}

// Counts summarises the recruitment overview cards.
type Counts struct {
	Jobs           int `json:"jobs"`
	OpenJobs       int `json:"open_jobs"`
	Candidates     int `json:"candidates"`
	Invites        int `json:"invites"`
	PendingInvites int `json:"pending_invites"`
}

func (s *Store) Counts() Counts {
	open, pending := len(s.OpenJobs()), len(s.PendingInvites())
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{
		Jobs:           len(s.jobs),
		OpenJobs:       open,
		Candidates:     len(s.candidates),
		Invites:        len(s.invites),
		PendingInvites: pending,
	}
}

// SetData replaces the cached lists.
func (s *Store) SetData(jobs []interview.Job, candidates []interview.CandidateListItem, invites []interview.Invite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = jobs
	s.candidates = candidates
	s.invites = invites
}
