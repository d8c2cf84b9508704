package base

import (
	"context"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
)

// API performs backend calls. *apiclient.Client satisfies it.
type API interface {
	Do(ctx context.Context, path string, opts apiclient.Options, out any) error
	Get(ctx context.Context, path string, params url.Values, out any) error
}

// Deps are shared by every store of a session.
type Deps struct {
	API       API
	Interview API
	Notifier  notify.Notifier
	Loader    *Loader
}

// Status tracks a store's loading flag and last error message.
type Status struct {
	mu      sync.RWMutex
	loading bool
	err     string
}

// Begin marks a fetch in flight and clears the previous error.
func (s *Status) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *Status) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

func (s *Status) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Error returns the last error message, "" after a successful operation.
func (s *Status) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Status) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
}

// Reset clears the loading flag and error.
func (s *Status) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = ""
}

// Fail records err as a display message, raises an error toast and returns err.
func (s *Status) Fail(ctx context.Context, n notify.Notifier, err error, fallback string) error {
	return s.FailWith(ctx, n, err, apiclient.Message(err, fallback))
}

// FailWith is Fail with a fixed display message.
func (s *Status) FailWith(ctx context.Context, n notify.Notifier, err error, msg string) error {
	s.SetError(msg)
	if n != nil {
		n.Add(ctx, notify.Error(msg))
	}
	return err
}

// Loader counts in-flight page-level fetches.
type Loader struct {
	active atomic.Int32
}

// Track marks a fetch in flight until the returned func is called.
func (l *Loader) Track() func() {
	if l == nil {
		return func() {}
	}
	l.active.Add(1)
	var once sync.Once
	return func() {
		once.Do(func() { l.active.Add(-1) })
	}
}

// Active reports whether any tracked fetch is in flight.
func (l *Loader) Active() bool {
	return l != nil && l.active.Load() > 0
}
