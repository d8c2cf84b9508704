package interview

import "errors"

var (
	ErrNoEmails      = errors.New("at least one email is required")
	ErrJobNotFound   = errors.New("job not found")
	ErrMissingIssuer = errors.New("invite issuer is required")
)
