package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/document"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
)

// multipart overhead allowed on top of the file itself
const uploadFormSlack = 1 << 20

type DocumentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Upload(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type DocumentHandlerImpl struct {
	registry *store.Registry
}

func NewDocumentHandler(registry *store.Registry) DocumentHandler {
	return &DocumentHandlerImpl{registry: registry}
}

// List implements DocumentHandler.
func (h *DocumentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	if _, err := set.Document.FetchPolicies(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{
		"documents":     set.Document.Views(),
		"missing_types": set.Document.Missing(),
		"type_options":  document.TypeOptions,
	})
}

// Upload implements DocumentHandler. Expects multipart fields title, document_type and file.
func (h *DocumentHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, document.MaxUploadSize+uploadFormSlack)
	if err := r.ParseMultipartForm(document.MaxUploadSize + uploadFormSlack); err != nil {
		slog.Error("UploadDocument parse error", "error", err)
		response.HandleError(w, document.ErrFileTooLarge)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.HandleError(w, document.ErrEmptyFile)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "Failed to read file", nil)
		return
	}

	doc, err := set.Document.Upload(r.Context(), document.Upload{
		Title:        r.FormValue("title"),
		DocumentType: r.FormValue("document_type"),
		FileName:     header.Filename,
		Content:      content,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Document uploaded successfully", doc.View())
}

// Delete implements DocumentHandler.
func (h *DocumentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	set, ok := sessionSet(w, r, h.registry)
	if !ok {
		return
	}
	id, ok := intParam(w, r, "id", "Document ID")
	if !ok {
		return
	}
	if err := set.Document.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Document deleted successfully", nil)
}
