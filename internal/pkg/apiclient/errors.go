package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
)

// Kind classifies an upstream failure.
type Kind string

const (
	KindTransport  Kind = "transport"
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindServer     Kind = "server"
)

// ErrSessionExpired is returned when a request still fails with 401 after a token refresh.
var ErrSessionExpired = session.ErrSessionExpired

// Error is returned for every failed upstream call.
type Error struct {
	Kind       Kind
	StatusCode int
	Method     string
	URL        string
	// Message is the backend's string "message" (or "detail") field.
	Message string
	// Fields holds structured field errors when "message" is an object.
	Fields map[string][]string
	Body   []byte
	Err    error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("[%s] %q: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("[%s] %q: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status of an upstream error, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is an upstream 401.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

func kindOf(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

type errorBody struct {
	Message json.RawMessage `json:"message"`
	Detail  string          `json:"detail"`
}

func newStatusError(method, url string, status int, body []byte) *Error {
	e := &Error{
		Kind:       kindOf(status),
		StatusCode: status,
		Method:     method,
		URL:        url,
		Body:       body,
	}

	var parsed errorBody
	if len(body) == 0 || json.Unmarshal(body, &parsed) != nil {
		return e
	}

	if len(parsed.Message) > 0 {
		var msg string
		if err := json.Unmarshal(parsed.Message, &msg); err == nil {
			e.Message = msg
			return e
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(parsed.Message, &obj); err == nil {
			e.Fields = make(map[string][]string, len(obj))
			for field, raw := range obj {
				e.Fields[field] = stringsOf(raw)
			}
			return e
		}
	}
	e.Message = parsed.Detail
	return e
}

// stringsOf flattens a string or array of strings, dropping other values.
func stringsOf(raw json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	var out []string
	for _, item := range list {
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// Message extracts a human-readable message from err.
// A string backend message wins; field errors are flattened and joined with ", ";
// an upstream status without either yields fallback; other errors use their text.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Fields != nil {
			keys := make([]string, 0, len(apiErr.Fields))
			for k := range apiErr.Fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			var msgs []string
			for _, k := range keys {
				msgs = append(msgs, apiErr.Fields[k]...)
			}
			if len(msgs) == 0 {
				return fallback
			}
			return strings.Join(msgs, ", ")
		}
		if apiErr.StatusCode != 0 {
			return fallback
		}
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// AsNotFound wraps err with sentinel when the upstream answered 404.
func AsNotFound(err, sentinel error) error {
	if StatusCode(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
