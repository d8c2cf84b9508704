package employee

import "errors"

var (
	ErrEmployeeNotLoaded = errors.New("employee not loaded")
	ErrInvalidPatch      = errors.New("invalid employee patch")
	ErrUnknownEmployee   = errors.New("employee not in lookup list")
)
