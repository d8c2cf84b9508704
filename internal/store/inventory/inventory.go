package inventory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/inventory"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

const devicesPath = "/api/inventory/devices/"

func devicePath(id int, suffix string) string {
	return fmt.Sprintf("%s%d/%s", devicesPath, id, suffix)
}

// Store backs the HR inventory pages.
type Store struct {
	base.Status
	deps base.Deps

	mu              sync.RWMutex
	summary         *inventory.Summary
	loadingSummary  bool
	devices         []inventory.Device
	loadingDevices  bool
	detail          *inventory.DeviceDetail
	loadingDetail   bool
	comments        []inventory.Comment
	loadingComments bool
}

func New(deps base.Deps) *Store {
	return &Store{deps: deps}
}

// FetchSummary loads the dashboard counts. A call while one is in flight returns nil at once.
func (s *Store) FetchSummary(ctx context.Context) (*inventory.Summary, error) {
	s.mu.Lock()
	if s.loadingSummary {
		s.mu.Unlock()
		return nil, nil
	}
	s.loadingSummary = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loadingSummary = false
		s.mu.Unlock()
	}()

	var resp inventory.SummaryResponse
	if err := s.deps.API.Get(ctx, "/api/inventory/summary/", nil, &resp); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch dashboard")
	}
	if resp.Error != 0 || resp.Data == nil {
		return nil, nil
	}

	s.mu.Lock()
	s.summary = resp.Data
	s.mu.Unlock()
	return resp.Data, nil
}

func (s *Store) TotalDevices() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.summary == nil {
		return 0
	}
	return s.summary.TotalDevices
}

func (s *Store) Categories() []inventory.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []inventory.Category{}
	if s.summary == nil {
		return out
	}
	for _, t := range s.summary.DeviceTypes {
		out = append(out, t.Category())
	}
	return out
}

func (s *Store) startDevices() {
	s.mu.Lock()
	s.loadingDevices = true
	s.devices = nil
	s.detail = nil
	s.mu.Unlock()
}

func (s *Store) endDevices() {
	s.mu.Lock()
	s.loadingDevices = false
	s.mu.Unlock()
}

// FetchDevicesByType lists the devices of one device type.
func (s *Store) FetchDevicesByType(ctx context.Context, typeID int) ([]inventory.Device, error) {
	s.startDevices()
	defer s.endDevices()

	var resp inventory.DeviceListResponse
	path := fmt.Sprintf("/api/inventory/device-types/%d/devices/", typeID)
	if err := s.deps.API.Get(ctx, path, nil, &resp); err != nil {
		return []inventory.Device{}, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch devices")
	}
	if resp.Error == 0 && resp.Data != nil {
		s.mu.Lock()
		s.devices = resp.Data
		s.mu.Unlock()
	}
	if resp.Data == nil {
		return []inventory.Device{}, nil
	}
	return resp.Data, nil
}

// FetchUnassigned lists unassigned devices matching search, optionally of one device type.
func (s *Store) FetchUnassigned(ctx context.Context, search string, category int) ([]inventory.Device, error) {
	s.startDevices()
	defer s.endDevices()

	params := url.Values{"search": {search}}
	if category != 0 {
		params.Set("category", strconv.Itoa(category))
	}

	var resp struct {
		Data []inventory.Device `json:"data"`
	}
	if err := s.deps.API.Get(ctx, devicesPath+"unassigned/", params, &resp); err != nil {
		return []inventory.Device{}, s.Fail(ctx, s.deps.Notifier, err, "Failed to fetch unassigned devices")
	}

	devices := make([]inventory.Device, 0, len(resp.Data))
	for _, d := range resp.Data {
		d = inventory.NormalizeUnassigned(d)
		// The category param is not honoured by every backend version.
		if category != 0 && d.DeviceType != category {
			continue
		}
		devices = append(devices, d)
	}

	s.mu.Lock()
	s.devices = devices
	s.mu.Unlock()
	return devices, nil
}

func (s *Store) FetchDetail(ctx context.Context, id int) (*inventory.DeviceDetail, error) {
	s.mu.Lock()
	s.loadingDetail = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loadingDetail = false
		s.mu.Unlock()
	}()

	var detail inventory.DeviceDetail
	if err := s.deps.API.Get(ctx, devicePath(id, ""), nil, &detail); err != nil {
		s.mu.Lock()
		s.detail = nil
		s.mu.Unlock()
		return nil, s.Fail(ctx, s.deps.Notifier, apiclient.AsNotFound(err, inventory.ErrDeviceNotFound), "Failed to fetch device details")
	}

	s.mu.Lock()
	s.detail = &detail
	s.mu.Unlock()
	return &detail, nil
}

// Unassign releases a device from its employee and returns the backend message.
func (s *Store) Unassign(ctx context.Context, id int) (string, error) {
	var resp inventory.MessageResponse
	opts := apiclient.Options{Method: http.MethodPost}
	if err := s.deps.API.Do(ctx, devicePath(id, "unassign/"), opts, &resp); err != nil {
		return "", s.Fail(ctx, s.deps.Notifier, err, "Failed to unassign device")
	}
	if resp.Error != 0 || resp.Data == nil || resp.Data.Message == "" {
		return "", nil
	}
	s.deps.Notifier.Add(ctx, notify.Success(resp.Data.Message))
	return resp.Data.Message, nil
}

// FetchComments loads a device's comments. Failures yield an empty list without a toast.
func (s *Store) FetchComments(ctx context.Context, id int) []inventory.Comment {
	if id == 0 {
		s.setComments([]inventory.Comment{})
		return []inventory.Comment{}
	}

	s.mu.Lock()
	s.loadingComments = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loadingComments = false
		s.mu.Unlock()
	}()

	var resp inventory.CommentsResponse
	if err := s.deps.API.Get(ctx, devicePath(id, "comments/"), nil, &resp); err != nil {
		s.setComments([]inventory.Comment{})
		return []inventory.Comment{}
	}

	comments := make([]inventory.Comment, 0, len(resp.Data))
	for _, c := range resp.Data {
		comments = append(comments, c.View())
	}
	s.setComments(comments)
	return comments
}

func (s *Store) setComments(c []inventory.Comment) {
	s.mu.Lock()
	s.comments = c
	s.mu.Unlock()
}

// Create adds a device and refreshes the summary counts.
func (s *Store) Create(ctx context.Context, req inventory.CreateRequest) (*inventory.DeviceDetail, error) {
	s.SetError("")
	if err := req.Validate(); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to create device")
	}

	var created inventory.DeviceDetail
	opts := apiclient.Options{Method: http.MethodPost, Body: req}
	if err := s.deps.API.Do(ctx, devicesPath, opts, &created); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to create device")
	}

	s.FetchSummary(ctx)
	return &created, nil
}

// Update edits a device and patches the cached detail and list row.
func (s *Store) Update(ctx context.Context, id int, req inventory.UpdateRequest) (*inventory.DeviceDetail, error) {
	s.SetError("")

	var updated *inventory.DeviceDetail
	opts := apiclient.Options{Method: http.MethodPut, Body: req.Payload()}
	if err := s.deps.API.Do(ctx, devicePath(id, ""), opts, &updated); err != nil {
		return nil, s.Fail(ctx, s.deps.Notifier, err, "Failed to update device")
	}
	if updated == nil {
		return nil, nil
	}

	s.mu.Lock()
	s.detail = updated
	for i := range s.devices {
		if s.devices[i].ID == id {
			s.devices[i].SerialNumber = updated.SerialNumber
			s.devices[i].ModelName = updated.ModelName
			s.devices[i].Status = updated.Status
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// Delete removes a device and refreshes the summary counts.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.SetError("")

	if err := s.deps.API.Do(ctx, devicePath(id, ""), apiclient.Options{Method: http.MethodDelete}, nil); err != nil {
		s.SetError(apiclient.Message(err, "Failed to delete device"))
		return err
	}

	s.mu.Lock()
	kept := s.devices[:0]
	for _, d := range s.devices {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.devices = kept
	if s.detail != nil && s.detail.ID == id {
		s.detail = nil
	}
	s.mu.Unlock()

	s.FetchSummary(ctx)
	return nil
}

func (s *Store) Devices() []inventory.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]inventory.Device(nil), s.devices...)
}

// Items maps the device list to table rows.
func (s *Store) Items() []inventory.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]inventory.Item, 0, len(s.devices))
	for _, d := range s.devices {
		items = append(items, d.Item())
	}
	return items
}

func (s *Store) Detail() *inventory.DeviceDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detail
}

// SelectedItem is the side panel view of the loaded detail, or nil.
func (s *Store) SelectedItem() *inventory.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.detail == nil {
		return nil
	}
	item := s.detail.Item()
	return &item
}

func (s *Store) Comments() []inventory.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]inventory.Comment(nil), s.comments...)
}

// Loading flags per section: summary, devices, detail, comments.
func (s *Store) LoadingSections() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]bool{
		"summary":  s.loadingSummary,
		"devices":  s.loadingDevices,
		"detail":   s.loadingDetail,
		"comments": s.loadingComments,
	}
}
