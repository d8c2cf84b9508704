package interview

import "encoding/json"

const (
	JobOpen   = "open"
	JobClosed = "closed"

	CandidatePending   = "PENDING"
	CandidateApproved  = "APPROVED"
	CandidateRejected  = "REJECTED"
	CandidateReviewing = "REVIEWING"

	InvitePending = "PENDING"
	InviteUsed    = "USED"
)

type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	Openings    *int   `json:"openings,omitempty"`
	Applicants  *int   `json:"applicants,omitempty"`
	JobType     string `json:"job_type,omitempty"`
	Experience  string `json:"experience,omitempty"`
}

type JobRef struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// CandidateListItem is a row of GET /api/candidates.
type CandidateListItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	CreatedAt string  `json:"created_at"`
	Job       JobRef  `json:"job"`
}

type CandidateDocument struct {
	ID            string `json:"id"`
	CandidateID   string `json:"candidate_id"`
	StorageBucket string `json:"storage_bucket"`
	StoragePath   string `json:"storage_path"`
	FileHash      string `json:"file_hash"`
	UploadedAt    string `json:"uploaded_at"`
	URL           string `json:"url"`
}

// Evaluation is the automated screening result of a candidate.
type Evaluation struct {
	ID             string            `json:"id"`
	CandidateID    string            `json:"candidate_id"`
	Score          float64           `json:"score"`
	Recommendation string            `json:"recommendation"`
	MatchedSkills  map[string]string `json:"matched_skills"`
	MissingSkills  map[string]string `json:"missing_skills"`
	Strengths      map[string]string `json:"strengths"`
	Weaknesses     map[string]string `json:"weaknesses"`
	Summary        string            `json:"summary"`
	Status         string            `json:"status"`
	ErrorMessage   *string           `json:"error_message"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}

type Session struct {
	ID            string  `json:"id"`
	CandidateID   string  `json:"candidate_id"`
	JobID         string  `json:"job_id"`
	Status        string  `json:"status"`
	StartedAt     *string `json:"started_at"`
	CompletedAt   *string `json:"completed_at"`
	Duration      *string `json:"duration"`
	AccessToken   string  `json:"access_token"`
	VideoURL      *string `json:"video_url"`
	TranscriptURL *string `json:"transcript_url"`
}

type CandidateDetail struct {
	ID              string              `json:"id"`
	JobID           string              `json:"job_id"`
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Phone           *string             `json:"phone"`
	CreatedAt       string              `json:"created_at"`
	Status          string              `json:"status"`
	StatusUpdatedAt *string             `json:"status_updated_at"`
	StatusUpdatedBy *string             `json:"status_updated_by"`
	Job             JobRef              `json:"job"`
	Documents       []CandidateDocument `json:"documents"`
	Evaluation      *Evaluation         `json:"evaluation"`
	Interview       *Session            `json:"interview"`
}

type Invite struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
	ExpiresAt  string  `json:"expires_at"`
	UsedAt     *string `json:"used_at"`
	HasApplied bool    `json:"has_applied"`
}

// Invites decodes either a single invite or a list of invites.
type Invites []Invite

func (iv *Invites) UnmarshalJSON(data []byte) error {
	var list []Invite
	if err := json.Unmarshal(data, &list); err == nil {
		*iv = list
		return nil
	}
	var one Invite
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*iv = Invites{one}
	return nil
}
