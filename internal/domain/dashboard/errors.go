package dashboard

import "errors"

var ErrSummaryUnavailable = errors.New("dashboard summary unavailable")
