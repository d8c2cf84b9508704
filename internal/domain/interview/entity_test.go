package interview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvites_UnmarshalJSON(t *testing.T) {
	var list Invites
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"a"},{"id":"b"}]`), &list))
	assert.Len(t, list, 2)

	var one Invites
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c","email":"c@x.io","status":"PENDING"}`), &one))
	require.Len(t, one, 1)
	assert.Equal(t, "c@x.io", one[0].Email)
}

func TestInviteRequest_Route(t *testing.T) {
	req := InviteRequest{Emails: []string{" a@x.io ", "", "  "}, IssuedBy: "u1"}
	emails := req.CleanEmails()
	assert.Equal(t, []string{"a@x.io"}, emails)

	path, body := req.Route(emails)
	assert.Equal(t, "/api/invites", path)
	assert.Equal(t, singleInvite{Email: "a@x.io", IssuedBy: "u1"}, body)

	path, body = req.Route([]string{"a@x.io", "b@x.io"})
	assert.Equal(t, "/api/invites/bulk", path)
	assert.Equal(t, bulkInvite{Emails: []string{"a@x.io", "b@x.io"}, IssuedBy: "u1"}, body)
}

func TestStatusRequest_Normalize(t *testing.T) {
	req := StatusRequest{Status: CandidateApproved, CustomMessage: "   "}
	require.NoError(t, req.Normalize())
	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"APPROVED"}`, string(b))

	bad := StatusRequest{Status: "MAYBE"}
	assert.Error(t, bad.Normalize())
}

func TestJobRequest_Validate(t *testing.T) {
	req := JobRequest{Title: "  ", Description: "d", Status: JobOpen}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title is required")

	ok := JobRequest{Title: "Go Engineer", Description: "Backend", Status: JobClosed, JobType: "Remote"}
	assert.NoError(t, ok.Validate())
}

func TestStatusToast(t *testing.T) {
	title, _ := StatusToast(CandidateApproved)
	assert.Equal(t, "Candidate approved", title)
	title, desc := StatusToast(CandidateRejected)
	assert.Equal(t, "Candidate rejected", title)
	assert.Contains(t, desc, "you are not selected")
}
