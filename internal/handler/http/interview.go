package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/interview"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
	"github.com/go-chi/chi/v5"
)

type InterviewHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)

	ListJobs(w http.ResponseWriter, r *http.Request)
	GetJob(w http.ResponseWriter, r *http.Request)
	CreateJob(w http.ResponseWriter, r *http.Request)
	UpdateJob(w http.ResponseWriter, r *http.Request)
	DeleteJob(w http.ResponseWriter, r *http.Request)

	ListCandidates(w http.ResponseWriter, r *http.Request)
	GetCandidate(w http.ResponseWriter, r *http.Request)
	UpdateCandidateStatus(w http.ResponseWriter, r *http.Request)

	ListInvites(w http.ResponseWriter, r *http.Request)
	CreateInvite(w http.ResponseWriter, r *http.Request)
	UpdateInviteStatus(w http.ResponseWriter, r *http.Request)
}

type InterviewHandlerImpl struct {
	registry *store.Registry
}

func NewInterviewHandler(registry *store.Registry) InterviewHandler {
	return &InterviewHandlerImpl{registry: registry}
}

// issuer identifies the signed-in user on the interview API.
func issuer(set *store.Set) string {
	u := set.Auth.User()
	if u == nil {
		return ""
	}
	return strconv.Itoa(u.ID)
}

// Overview implements InterviewHandler.
func (h *InterviewHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	if _, err := set.Interview.FetchJobs(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	if _, err := set.Interview.FetchCandidates(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{
		"counts":      set.Interview.Counts(),
		"open_jobs":   set.Interview.OpenJobs(),
		"closed_jobs": set.Interview.ClosedJobs(),
	})
}

// ListJobs implements InterviewHandler.
func (h *InterviewHandlerImpl) ListJobs(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	jobs, err := set.Interview.FetchJobs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, jobs)
}

// GetJob implements InterviewHandler.
func (h *InterviewHandlerImpl) GetJob(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	job, err := set.Interview.FetchJobByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, job)
}

// CreateJob implements InterviewHandler.
func (h *InterviewHandlerImpl) CreateJob(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	var req interview.JobRequest
	if !decodeJSON(w, r, &req, "CreateJob") {
		return
	}
	job, err := set.Interview.CreateJob(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Job created successfully", job)
}

// UpdateJob implements InterviewHandler.
func (h *InterviewHandlerImpl) UpdateJob(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	var req interview.JobRequest
	if !decodeJSON(w, r, &req, "UpdateJob") {
		return
	}
	job, err := set.Interview.UpdateJob(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, job)
}

// DeleteJob implements InterviewHandler.
func (h *InterviewHandlerImpl) DeleteJob(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	if err := set.Interview.DeleteJob(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Job deleted successfully", nil)
}

// ListCandidates implements InterviewHandler.
func (h *InterviewHandlerImpl) ListCandidates(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	list, err := set.Interview.FetchCandidates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// GetCandidate implements InterviewHandler.
func (h *InterviewHandlerImpl) GetCandidate(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	c, err := set.Interview.FetchCandidateByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, c)
}

// UpdateCandidateStatus implements InterviewHandler.
func (h *InterviewHandlerImpl) UpdateCandidateStatus(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	var req interview.StatusRequest
	if !decodeJSON(w, r, &req, "UpdateCandidateStatus") {
		return
	}
	if err := set.Interview.UpdateCandidateStatus(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		response.HandleError(w, err)
		return
	}
	title, _ := interview.StatusToast(req.Status)
	response.SuccessWithMessage(w, title, set.Interview.SelectedCandidate())
}

// ListInvites implements InterviewHandler.
func (h *InterviewHandlerImpl) ListInvites(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	invites, err := set.Interview.FetchInvites(r.Context(), issuer(set))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{
		"invites": invites,
		"pending": set.Interview.PendingInvites(),
	})
}

// CreateInvite implements InterviewHandler.
func (h *InterviewHandlerImpl) CreateInvite(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	var req interview.InviteRequest
	if !decodeJSON(w, r, &req, "CreateInvite") {
		return
	}
	if len(req.CleanEmails()) == 0 {
		response.HandleError(w, interview.ErrNoEmails)
		return
	}
	req.IssuedBy = issuer(set)

	created, err := set.Interview.CreateInvite(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, strconv.Itoa(len(created))+" invite(s) sent successfully", created)
}

type inviteStatusRequest struct {
	Status string `json:"status"`
}

// UpdateInviteStatus changes an invite locally.
func (h *InterviewHandlerImpl) UpdateInviteStatus(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	var req inviteStatusRequest
	if !decodeJSON(w, r, &req, "UpdateInviteStatus") {
		return
	}
	if req.Status != interview.InvitePending && req.Status != interview.InviteUsed {
		response.BadRequest(w, "Status must be PENDING or USED", nil)
		return
	}
	set.Interview.UpdateInviteStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	response.Success(w, set.Interview.Invites())
}
