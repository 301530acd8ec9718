// Package client speaks the medical query firewall HTTP API: the public
// chat endpoint and the x-api-key protected admin surface (audit log,
// rules, review queue, health, metrics).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// Client is a thin client for one firewall server. It is safe for use
// from a single goroutine per request flow; qfw never has more than one
// request in flight per control.
type Client struct {
	baseURL    string
	adminKey   string
	sessionID  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAdminKey sets the x-api-key used for admin endpoints.
func WithAdminKey(key string) Option {
	return func(c *Client) { c.adminKey = key }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the given base URL. Every Client gets a fresh
// session id; the server uses it to group audit rows.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		sessionID:  uuid.NewString(),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionID returns the session id attached to chat requests.
func (c *Client) SessionID() string { return c.sessionID }

// HasAdminKey reports whether admin endpoints can be called.
func (c *Client) HasAdminKey() bool { return c.adminKey != "" }

// Chat posts user text to the decision endpoint and returns the tagged
// response. The caller is expected to have trimmed the text already.
func (c *Client) Chat(ctx context.Context, text string) (*ChatResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/chat", nil, ChatRequest{Text: text, SessionID: c.sessionID}, false)
	if err != nil {
		return nil, err
	}
	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse chat response: %w", err)
	}
	return &resp, nil
}

// Audits fetches up to limit audit records and returns the body verbatim.
// The payload stays raw so the download path can re-indent it without
// reordering or dropping fields.
func (c *Client) Audits(ctx context.Context, limit int) (json.RawMessage, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	return c.do(ctx, http.MethodGet, "/admin/audit", q, nil, true)
}

// AuditByID fetches one audit record verbatim.
func (c *Client) AuditByID(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/admin/audit/%d", id), nil, nil, true)
}

// Rules fetches the current rule list verbatim.
func (c *Client) Rules(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/admin/rules", nil, nil, true)
}

// UpdateRules replaces the server rule list. The server requires a JSON
// array; callers validate before uploading.
func (c *Client) UpdateRules(ctx context.Context, rules json.RawMessage) error {
	_, err := c.do(ctx, http.MethodPost, "/admin/rules", nil, rules, true)
	return err
}

// ReviewQueue fetches WARN-flagged records awaiting a reviewer decision.
func (c *Client) ReviewQueue(ctx context.Context, limit int) (*ReviewPage, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	body, err := c.do(ctx, http.MethodGet, "/admin/review", q, nil, true)
	if err != nil {
		return nil, err
	}
	var page ReviewPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("parse review queue: %w", err)
	}
	return &page, nil
}

// SetReviewDecision records an admin verdict for one audit record.
func (c *Client) SetReviewDecision(ctx context.Context, id int64, action string) error {
	if !ValidReviewAction(action) {
		return fmt.Errorf("invalid review action %q (valid: allow, block, ignore)", action)
	}
	q := url.Values{"action": {action}}
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/admin/review/%d", id), q, nil, true)
	return err
}

// Health probes the unauthenticated health endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	body, err := c.do(ctx, http.MethodGet, "/health", nil, nil, false)
	if err != nil {
		return nil, err
	}
	var h Health
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("parse health response: %w", err)
	}
	return &h, nil
}

// Metrics fetches the request counters (admin only).
func (c *Client) Metrics(ctx context.Context) (*Metrics, error) {
	body, err := c.do(ctx, http.MethodGet, "/metrics", nil, nil, true)
	if err != nil {
		return nil, err
	}
	var m Metrics
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("parse metrics response: %w", err)
	}
	return &m, nil
}

// do performs one request and returns the response body. Admin requests
// carry the x-api-key header and are refused locally when no key is set,
// so a missing credential never leaves the machine as a doomed request.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, admin bool) ([]byte, error) {
	if admin && c.adminKey == "" {
		return nil, ErrNoAdminKey
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("x-api-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, resp.Status)
	}
	return body, nil
}
