package document

import (
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/document"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upload struct {
	title, docType, fileName, content string
}

func TestStore_Lifecycle(t *testing.T) {
	b := storetest.New(t)
	b.JSON("GET /api/organizations/documents/{$}", map[string]any{
		"results": []map[string]any{
			{"id": 1, "title": "Leave Policy", "document_type": "offer_letter", "file_size": 2048},
		},
	})
	var got atomic.Value
	b.Mux.HandleFunc("POST /api/organizations/documents/{$}", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			storetest.WriteJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			storetest.WriteJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		data, _ := io.ReadAll(f)
		got.Store(upload{
			title:    r.FormValue("title"),
			docType:  r.FormValue("document_type"),
			fileName: hdr.Filename,
			content:  string(data),
		})
		storetest.WriteJSON(w, http.StatusCreated, map[string]any{"id": 2, "title": r.FormValue("title"), "document_type": "cv"})
	})
	b.Mux.HandleFunc("DELETE /api/organizations/documents/{id}/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	s := New(b.Deps)
	docs, err := s.FetchPolicies(storetest.Ctx())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "2.0 KB", s.Views()[0].Size)

	created, err := s.Upload(storetest.Ctx(), document.Upload{
		DocumentType: "CV",
		FileName:     "resume.pdf",
		Content:      []byte("%PDF-1.7"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created.ID)
	assert.Equal(t, upload{title: "CV", docType: "cv", fileName: "resume.pdf", content: "%PDF-1.7"}, got.Load())
	assert.Equal(t, 2, s.Documents()[0].ID)
	assert.NotContains(t, s.Missing(), "cv")
	assert.Equal(t, "Document uploaded successfully", b.Notifier.Last().Description)

	require.NoError(t, s.Delete(storetest.Ctx(), 2))
	require.Len(t, s.Documents(), 1)
	assert.Contains(t, s.Missing(), "cv")
}

func TestStore_UploadInvalid(t *testing.T) {
	b := storetest.New(t)
	s := New(b.Deps)

	_, err := s.Upload(storetest.Ctx(), document.Upload{FileName: "virus.exe", Content: []byte("MZ")})
	require.ErrorIs(t, err, document.ErrUnsupportedType)
	assert.Equal(t, "file type is not supported", s.Error())
}

func TestStore_FetchFailure(t *testing.T) {
	b := storetest.New(t)
	b.Fail("GET /api/organizations/documents/{$}", http.StatusInternalServerError, nil)

	s := New(b.Deps)
	_, err := s.FetchPolicies(storetest.Ctx())
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch documents", s.Error())
}
