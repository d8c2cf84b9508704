// Package storetest wires stores to an in-process fake backend.
package storetest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

// Backend is a fake REST backend.
type Backend struct {
	Mux      *http.ServeMux
	Notifier *notify.Recorder
	Deps     base.Deps
}

// New starts a fake backend that serves both the main and interview API.
func New(t *testing.T) *Backend {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	api, err := apiclient.New(srv.URL)
	if err != nil {
		t.Fatalf("new api client: %v", err)
	}
	interview, err := apiclient.New(srv.URL, apiclient.WithName("interview"), apiclient.WithRetries(1))
	if err != nil {
		t.Fatalf("new interview client: %v", err)
	}

	rec := &notify.Recorder{}
	return &Backend{
		Mux:      mux,
		Notifier: rec,
		Deps: base.Deps{
			API:       api,
			Interview: interview,
			Notifier:  rec,
			Loader:    &base.Loader{},
		},
	}
}

// JSON registers a handler answering pattern with body.
func (b *Backend) JSON(pattern string, body any) {
	b.Mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, body)
	})
}

// Fail registers a handler answering pattern with status and body.
func (b *Backend) Fail(pattern string, status int, body any) {
	b.Mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, body)
	})
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// DecodeBody decodes a request body into a generic map.
func DecodeBody(r *http.Request) map[string]any {
	var m map[string]any
	json.NewDecoder(r.Body).Decode(&m)
	return m
}

// Ctx is the context stores are called with in tests.
func Ctx() context.Context {
	return context.Background()
}
