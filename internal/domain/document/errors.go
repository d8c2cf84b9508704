package document

import "errors"

var (
	ErrEmptyFile       = errors.New("file is required")
	ErrFileTooLarge    = errors.New("file exceeds the 10 MB limit")
	ErrUnsupportedType = errors.New("file type is not supported")
)
