package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrNoSession       = errors.New("no session in context")
	ErrTokensMissing   = errors.New("session tokens missing")
)
