package attendance

import "errors"

var ErrInvalidView = errors.New("view must be month or week")
