package interview

import (
	"strings"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

type JobRequest struct {
	Title       string `json:"title" validate:"required" msg:"Title is required"`
	Description string `json:"description" validate:"required" msg:"Description is required"`
	Status      string `json:"status" validate:"required,oneof=open closed"`
	Openings    *int   `json:"openings,omitempty" validate:"omitempty,min=0"`
	Applicants  *int   `json:"applicants,omitempty"`
	JobType     string `json:"job_type,omitempty" validate:"omitempty,oneof=Remote Hybrid Onsite"`
	Experience  string `json:"experience,omitempty"`
}

func (r *JobRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	return validator.Struct(r)
}

// StatusRequest is the candidate status change body.
type StatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=APPROVED REJECTED PENDING"`
	CustomMessage string `json:"customMessage,omitempty"`
}

// Normalize trims the custom message, dropping it when blank.
func (r *StatusRequest) Normalize() error {
	r.CustomMessage = strings.TrimSpace(r.CustomMessage)
	return validator.Struct(r)
}

type singleInvite struct {
	Email    string `json:"email"`
	IssuedBy string `json:"issued_by"`
}

type bulkInvite struct {
	Emails   []string `json:"emails"`
	IssuedBy string   `json:"issued_by"`
}

// InviteRequest sends interview invites issued by one user.
type InviteRequest struct {
	Emails   []string `json:"emails"`
	IssuedBy string   `json:"issued_by"`
}

// CleanEmails trims the emails and drops blank ones.
func (r InviteRequest) CleanEmails() []string {
	var out []string
	for _, e := range r.Emails {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Route returns the endpoint and body for emails: one email uses the single
// endpoint, more use the bulk endpoint.
func (r InviteRequest) Route(emails []string) (string, any) {
	if len(emails) == 1 {
		return "/api/invites", singleInvite{Email: emails[0], IssuedBy: r.IssuedBy}
	}
	return "/api/invites/bulk", bulkInvite{Emails: emails, IssuedBy: r.IssuedBy}
}

// StatusToast is the title and description shown after a candidate decision.
func StatusToast(status string) (string, string) {
	if status == CandidateApproved {
		return "Candidate approved", "A selection email ('you are selected') has been sent to the candidate."
	}
	return "Candidate rejected", "A rejection email ('you are not selected') has been sent to the candidate."
}
