package apiclient

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// Options describes one outbound request.
type Options struct {
	Method  string
	Body    any
	Params  url.Values
	Headers map[string]string
}

// Multipart is a form body. It is sent without the default JSON content type.
type Multipart struct {
	Fields map[string]string
	Files  []File
}

// File is one uploaded part of a Multipart body.
type File struct {
	Field   string
	Name    string
	Content []byte
}

func (m *Multipart) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range m.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}
	for _, f := range m.Files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", fmt.Errorf("write form file %s: %w", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the transport timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRetries sets the fixed retry count for retryable failures.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// WithName labels the client in logs and metrics.
func WithName(name string) Option {
	return func(c *Client) { c.name = name }
}

// WithSessionTokens enables bearer authentication and refresh-on-401
// using the token store of the session found in the request context.
func WithSessionTokens(store TokenStore, accessTTL time.Duration) Option {
	return func(c *Client) {
		c.tokens = store
		c.accessTTL = accessTTL
	}
}

// WithRefreshPath overrides the refresh endpoint.
func WithRefreshPath(path string) Option {
	return func(c *Client) { c.refreshPath = path }
}

// WithObserver reports request and refresh outcomes.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithSessionEndHook is called after a session's tokens are cleared.
func WithSessionEndHook(fn func(sessionID string)) Option {
	return func(c *Client) { c.onSessionEnd = fn }
}
