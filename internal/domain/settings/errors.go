package settings

import "errors"

var (
	ErrUnknownField  = errors.New("unknown permission field")
	ErrRowOutOfRange = errors.New("permission row out of range")
)
