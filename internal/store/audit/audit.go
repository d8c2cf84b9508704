package audit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/inventory"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
	"golang.org/x/sync/errgroup"
)

// maxParallelFetches bounds LoadDeviceList's concurrent device requests.
const maxParallelFetches = 8

// loadStatus aliases base.Status so its embedded field name does not collide
// with the Status accessor below.
type loadStatus = base.Status

// Store backs the device audit flow of the current user.
type Store struct {
	loadStatus
	deps base.Deps

	mu            sync.RWMutex
	status        *inventory.AuditStatus
	devices       []inventory.ListItem
	cache         map[int]inventory.AuditView
	detailLoading bool
}

func New(deps base.Deps) *Store {
	return &Store{deps: deps, cache: map[int]inventory.AuditView{}}
}

func devicePath(id int) string {
	return fmt.Sprintf("/api/inventory/devices/%d/", id)
}

// FetchStatus loads which assigned devices still need an audit.
func (s *Store) FetchStatus(ctx context.Context) (*inventory.AuditStatus, error) {
	s.Begin()
	defer s.End()

	var resp inventory.AuditStatusResponse
	if err := s.deps.API.Get(ctx, "/api/inventory/user-audit-status/", nil, &resp); err != nil {
		s.mu.Lock()
		s.status = nil
		s.devices = nil
		s.mu.Unlock()
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch audit status")
	}

	s.mu.Lock()
	s.status = resp.Data
	s.mu.Unlock()
	return resp.Data, nil
}

// LoadDeviceList fetches every device of the audit status in parallel.
// Devices that fail to load are left out.
func (s *Store) LoadDeviceList(ctx context.Context) []inventory.ListItem {
	s.mu.RLock()
	var refs []inventory.AuditDevice
	if s.status != nil {
		refs = append(refs, s.status.Devices...)
	}
	s.mu.RUnlock()
	if len(refs) == 0 {
		return s.Devices()
	}

	items := make([]*inventory.ListItem, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)
	for i, ref := range refs {
		g.Go(func() error {
			var d inventory.DeviceDetail
			if err := s.deps.API.Get(gctx, devicePath(ref.ID), nil, &d); err != nil {
				slog.Warn("Failed to fetch audit device", "device_id", ref.ID, "error", err)
				return nil
			}
			item := d.ListItem(ref.IsAudited)
			items[i] = &item
			return nil
		})
	}
	g.Wait()

	list := make([]inventory.ListItem, 0, len(items))
	for _, item := range items {
		if item != nil {
			list = append(list, *item)
		}
	}

	s.mu.Lock()
	s.devices = list
	s.mu.Unlock()
	return s.Devices()
}

// FetchDeviceDetails returns the audit card of a device, fetching it once per store.
func (s *Store) FetchDeviceDetails(ctx context.Context, id int) (*inventory.AuditView, error) {
	s.mu.RLock()
	cached, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return &cached, nil
	}

	s.setDetailLoading(true)
	defer s.setDetailLoading(false)
	s.SetError("")

	var d inventory.DeviceDetail
	if err := s.deps.API.Get(ctx, devicePath(id), nil, &d); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, fmt.Sprintf("Failed to fetch device %d", id))
	}

	view := d.AuditView()
	s.mu.Lock()
	s.cache[id] = view
	s.mu.Unlock()
	return &view, nil
}

func (s *Store) setDetailLoading(v bool) {
	s.mu.Lock()
	s.detailLoading = v
	s.mu.Unlock()
}

// Submit records the audit of one device.
func (s *Store) Submit(ctx context.Context, id int, sub inventory.AuditSubmission) bool {
	s.Begin()
	defer s.End()

	if err := sub.Validate(); err != nil {
		s.Fail(ctx, s.deps.Notifier, err, "Failed to submit audit")
		return false
	}

	path := fmt.Sprintf("/api/inventory/devices/%d/submit-audit/", id)
	if err := s.deps.API.Do(ctx, path, apiclient.Options{Method: http.MethodPost, Body: sub}, nil); err != nil {
		s.Fail(ctx, s.deps.Notifier, err, "Failed to submit audit")
		return false
	}

	s.deps.Notifier.Add(ctx, notify.Success(inventory.AuditSubmittedText))
	return true
}

func (s *Store) Status() *inventory.AuditStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Store) Devices() []inventory.ListItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]inventory.ListItem{}, s.devices...)
}

func (s *Store) Unaudited() []inventory.ListItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []inventory.ListItem{}
	for _, d := range s.devices {
		if !d.IsAudited {
			out = append(out, d)
		}
	}
	return out
}

// IsDeviceAudited reports whether the audit status marks id as audited.
func (s *Store) IsDeviceAudited(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status == nil {
		return false
	}
	for _, d := range s.status.Devices {
		if d.ID == id && d.IsAudited {
			return true
		}
	}
	return false
}

// AllAudited is true until a status says otherwise.
func (s *Store) AllAudited() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status == nil || s.status.AllItemsAudited
}

func (s *Store) DetailLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detailLoading
}
