package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultRefreshPath = "/auth/refresh-token/"
	DefaultTimeout     = 30 * time.Second
)

// TokenStore is the part of session.TokenStore the client needs.
type TokenStore interface {
	Get(ctx context.Context, sessionID string) (session.Tokens, error)
	SetAccess(ctx context.Context, sessionID string, access string, expiry time.Time) error
	Delete(ctx context.Context, sessionID string) error
}

// Observer receives request and refresh outcomes.
type Observer interface {
	ObserveRequest(client, method string, status int, duration time.Duration)
	ObserveRefresh(client string, ok bool)
}

type noopObserver struct{}

func (noopObserver) ObserveRequest(string, string, int, time.Duration) {}
func (noopObserver) ObserveRefresh(string, bool) {}

// Client performs JSON requests against one backend.
type Client struct {
	name         string
	baseURL      *url.URL
	http         *http.Client
	retries      int
	tokens       TokenStore
	accessTTL    time.Duration
	refreshPath  string
	observer     Observer
	onSessionEnd func(sessionID string)
	refreshes    singleflight.Group
	now          func() time.Time
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		name:        "api",
		baseURL:     u,
		http:        &http.Client{Timeout: DefaultTimeout},
		refreshPath: DefaultRefreshPath,
		observer:    noopObserver{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name returns the client label.
func (c *Client) Name() string {
	return c.name
}

// request is one prepared call; it can be sent several times.
type request struct {
	method      string
	url         string
	body        []byte
	contentType string
	headers     map[string]string
}

// Do sends a request to path and decodes a JSON response into out (if non-nil).
func (c *Client) Do(ctx context.Context, path string, opts Options, out any) error {
	req, err := c.prepare(path, opts)
	if err != nil {
		return err
	}

	var (
		sessionID string
		tokens    session.Tokens
		hasToken  bool
	)
	if c.tokens != nil {
		if id, ok := session.IDFromContext(ctx); ok {
			sessionID = id
			tokens, err = c.tokens.Get(ctx, id)
			switch {
			case err == nil:
				hasToken = tokens.Access() != ""
			case errors.Is(err, session.ErrSessionNotFound):
			default:
				return fmt.Errorf("load session tokens: %w", err)
			}
		}
	}

	_, callerAuth := req.headers["Authorization"]
	auth := ""
	if hasToken && !callerAuth {
		auth = bearer(tokens)
	}

	err = c.send(ctx, req, auth, c.retries, out)
	if err == nil || !hasToken || callerAuth || !IsUnauthorized(err) {
		return err
	}

	access, err := c.refresh(ctx, sessionID, tokens)
	if err != nil {
		return err
	}

	tokens.Token.AccessToken = access
	err = c.send(ctx, req, bearer(tokens), 0, out)
	if IsUnauthorized(err) {
		slog.Warn("Upstream rejected refreshed token", "client", c.name, "url", req.url)
		c.endSession(ctx, sessionID)
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	return err
}

// Get is Do with GET and query params.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.Do(ctx, path, Options{Method: http.MethodGet, Params: params}, out)
}

// Post is Do with POST and a body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, path, Options{Method: http.MethodPost, Body: body}, out)
}

// Put is Do with PUT and a body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, path, Options{Method: http.MethodPut, Body: body}, out)
}

// Patch is Do with PATCH and a body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, path, Options{Method: http.MethodPatch, Body: body}, out)
}

// Delete is Do with DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, path, Options{Method: http.MethodDelete}, out)
}

func bearer(tokens session.Tokens) string {
	t := *tokens.Token
	return t.Type() + " " + t.AccessToken
}

func (c *Client) prepare(path string, opts Options) (request, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return request{}, fmt.Errorf("parse path %q: %w", path, err)
	}
	base := *c.baseURL
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	u := base.ResolveReference(ref)
	if len(opts.Params) > 0 {
		q := u.Query()
		for k, vs := range opts.Params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	req := request{
		method:  method,
		url:     u.String(),
		headers: make(map[string]string, len(opts.Headers)),
	}
	for k, v := range opts.Headers {
		req.headers[http.CanonicalHeaderKey(k)] = v
	}

	switch body := opts.Body.(type) {
	case nil:
	case *Multipart:
		req.body, req.contentType, err = body.encode()
		if err != nil {
			return request{}, fmt.Errorf("encode multipart body: %w", err)
		}
	case Multipart:
		req.body, req.contentType, err = body.encode()
		if err != nil {
			return request{}, fmt.Errorf("encode multipart body: %w", err)
		}
	default:
		req.body, err = json.Marshal(body)
		if err != nil {
			return request{}, fmt.Errorf("encode request body: %w", err)
		}
		req.contentType = "application/json"
	}
	if req.contentType == "" {
		req.contentType = "application/json"
	}
	return req, nil
}

// send performs req with up to retries extra attempts on retryable failures.
func (c *Client) send(ctx context.Context, req request, auth string, retries int, out any) error {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			slog.Debug("Retrying upstream request",
				"client", c.name, "method", req.method, "url", req.url, "attempt", attempt, "error", err)
		}
		err = c.attempt(ctx, req, auth, out)
		if err == nil || !retryable(ctx, err) {
			return err
		}
	}
	return err
}

func (c *Client) attempt(ctx context.Context, req request, auth string, out any) error {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
	if err != nil {
		return &Error{Kind: KindTransport, Method: req.method, URL: req.url, Err: err}
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", req.contentType)
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}
	if auth != "" {
		httpReq.Header.Set("Authorization", auth)
	}

	start := c.now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.observer.ObserveRequest(c.name, req.method, 0, time.Since(start))
		return &Error{Kind: KindTransport, Method: req.method, URL: req.url, Err: err}
	}
	defer resp.Body.Close()
	c.observer.ObserveRequest(c.name, req.method, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Method: req.method, URL: req.url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(req.method, req.url, resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.method, req.url, err)
	}
	return nil
}

var retryStatuses = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusConflict:            true,
	http.StatusTooEarly:            true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Kind == KindTransport {
		return true
	}
	return retryStatuses[apiErr.StatusCode]
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// refresh exchanges the refresh token for a new access token.
// Concurrent callers on one session share a single upstream call, and a
// caller arriving after another refresh stored a newer token reuses it.
func (c *Client) refresh(ctx context.Context, sessionID string, stale session.Tokens) (string, error) {
	v, err, _ := c.refreshes.Do(sessionID, func() (any, error) {
		if current, err := c.tokens.Get(ctx, sessionID); err == nil &&
			current.Access() != "" && current.Access() != stale.Access() {
			return current.Access(), nil
		}

		req, err := c.prepare(c.refreshPath, Options{
			Method: http.MethodPost,
			Body:   refreshRequest{Refresh: stale.Refresh()},
		})
		if err != nil {
			return "", err
		}

		var resp refreshResponse
		err = c.send(ctx, req, "", 0, &resp)
		if err == nil && resp.Access == "" {
			err = errors.New("refresh response carried no access token")
		}
		if err != nil {
			c.observer.ObserveRefresh(c.name, false)
			slog.Warn("Token refresh failed", "client", c.name, "error", err)
			c.endSession(ctx, sessionID)
			return "", fmt.Errorf("refresh access token: %w", err)
		}

		if err := c.tokens.SetAccess(ctx, sessionID, resp.Access, c.now().Add(c.accessTTL)); err != nil {
			c.observer.ObserveRefresh(c.name, false)
			return "", fmt.Errorf("store refreshed token: %w", err)
		}
		c.observer.ObserveRefresh(c.name, true)
		slog.Debug("Access token refreshed", "client", c.name)
		return resp.Access, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// endSession clears the session tokens and notifies the hook.
func (c *Client) endSession(ctx context.Context, sessionID string) {
	if err := c.tokens.Delete(context.WithoutCancel(ctx), sessionID); err != nil {
		slog.Error("Failed to clear session tokens", "error", err)
	}
	if c.onSessionEnd != nil {
		c.onSessionEnd(sessionID)
	}
}
