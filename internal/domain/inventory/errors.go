package inventory

import "errors"

var (
	ErrSummaryUnavailable = errors.New("inventory summary unavailable")
	ErrDeviceNotFound     = errors.New("device not found")
	ErrMissingDeviceID    = errors.New("device id is required")
)
