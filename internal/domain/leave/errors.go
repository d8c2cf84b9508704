package leave

import "errors"

var (
	ErrBalancesUnavailable = errors.New("leave balances unavailable")
	ErrRequestNotFound     = errors.New("leave request not found")
)
