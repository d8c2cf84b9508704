package document

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/document"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

const documentsPath = "/api/organizations/documents/"

// Store holds the organization's policy documents.
type Store struct {
	base.Status
	deps base.Deps

	mu        sync.RWMutex
	documents []document.Document
}

func New(deps base.Deps) *Store {
	return &Store{deps: deps}
}

func (s *Store) FetchPolicies(ctx context.Context) ([]document.Document, error) {
	s.Begin()
	defer s.End()

	var resp document.ListResponse
	if err := s.deps.API.Get(ctx, documentsPath, nil, &resp); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch documents")
	}

	s.mu.Lock()
	s.documents = resp.Results
	s.mu.Unlock()
	return s.Documents(), nil
}

// Upload sends a file as multipart form data and prepends the stored document.
func (s *Store) Upload(ctx context.Context, up document.Upload) (*document.Document, error) {
	s.Begin()
	defer s.End()

	if err := up.Validate(); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to upload document")
	}

	body := &apiclient.Multipart{
		Fields: map[string]string{
			"title":         up.Title,
			"document_type": up.DocumentType,
		},
		Files: []apiclient.File{{Field: "file", Name: up.FileName, Content: up.Content}},
	}
	var created document.Document
	if err := s.deps.API.Do(ctx, documentsPath, apiclient.Options{Method: http.MethodPost, Body: body}, &created); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to upload document")
	}

	s.mu.Lock()
	s.documents = append([]document.Document{created}, s.documents...)
	s.mu.Unlock()
	s.deps.Notifier.Add(ctx, notify.Success("Document uploaded successfully"))
	return &created, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	s.Begin()
	defer s.End()

	path := fmt.Sprintf("%s%d/", documentsPath, id)
	if err := s.deps.API.Do(ctx, path, apiclient.Options{Method: http.MethodDelete}, nil); err != nil {
		return s.Fail(ctx, s.deps.Notifier, err, "Failed to delete document")
	}

	s.mu.Lock()
	kept := make([]document.Document, 0, len(s.documents))
	for _, d := range s.documents {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.documents = kept
	s.mu.Unlock()
	s.deps.Notifier.Add(ctx, notify.Success("Document deleted successfully"))
	return nil
}

func (s *Store) Documents() []document.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]document.Document(nil), s.documents...)
}

func (s *Store) Views() []document.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]document.View, 0, len(s.documents))
	for _, d := range s.documents {
		out = append(out, d.View())
	}
	return out
}

// Missing lists required document types not yet on file.
func (s *Store) Missing() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return document.Missing(s.documents)
}
