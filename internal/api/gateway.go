// Package api implements the HTTP gateway every domain service calls
// through: one configured client that resolves the base URL, attaches the
// bearer token, and turns failed responses into *APIError values. The
// gateway never retries and enforces no timeout beyond the client's fixed
// request timeout.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

// TokenFunc returns the current bearer token, or "" when signed out.
type TokenFunc func() string

var (
	// Login and registration endpoints must never carry a (possibly
	// stale) Authorization header.
	authEndpointRe = regexp.MustCompile(`(?i)/api/(?:auth/)?(login|register)|^/api/auth$|/api/admin/auth$`)
	cartEndpointRe = regexp.MustCompile(`(?i)/api/cart(/|$)`)
)

// Gateway is the single configured HTTP client for the backend.
type Gateway struct {
	base   string
	client *http.Client
	token  TokenFunc

	mu       sync.RWMutex
	authFlow bool
}

// NewGateway builds a gateway for the given backend root. Trailing slashes
// on baseURL are ignored. A zero timeout falls back to 10 seconds.
func NewGateway(baseURL string, timeout time.Duration, token TokenFunc) *Gateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Gateway{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
		token:  token,
	}
}

// SetAuthFlow marks the client as being inside a login/registration flow
// (the web client's "on the login page" state). While set, outbound
// requests drop the Authorization header and cart calls are cancelled
// locally instead of being sent.
func (g *Gateway) SetAuthFlow(active bool) {
	g.mu.Lock()
	g.authFlow = active
	g.mu.Unlock()
}

// InAuthFlow reports whether an auth flow is in progress.
func (g *Gateway) InAuthFlow() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authFlow
}

// BaseURL returns the configured backend root.
func (g *Gateway) BaseURL() string { return g.base }

// Do performs one request. path must start with "/" and is resolved under
// the base URL; body (when non-nil) is sent as JSON; a non-nil out has the
// response decoded into it. Non-2xx responses come back as *APIError.
func (g *Gateway) Do(ctx context.Context, method, path string, body, out any) error {
	if g.InAuthFlow() {
		if cartEndpointRe.MatchString(path) {
			return fmt.Errorf("%s %s: %w", method, path, ErrRequestBlocked)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if !g.InAuthFlow() && !authEndpointRe.MatchString(path) {
		if t := g.token(); t != "" {
			if !strings.HasPrefix(t, "Bearer ") {
				t = "Bearer " + t
			}
			req.Header.Set("Authorization", t)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Status:  resp.StatusCode,
			Message: extractMessage(data),
			Body:    data,
		}
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Get issues a GET request.
func (g *Gateway) Get(ctx context.Context, path string, out any) error {
	return g.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body.
func (g *Gateway) Post(ctx context.Context, path string, body, out any) error {
	return g.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (g *Gateway) Put(ctx context.Context, path string, body, out any) error {
	return g.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request; body may be nil.
func (g *Gateway) Delete(ctx context.Context, path string, body, out any) error {
	return g.Do(ctx, http.MethodDelete, path, body, out)
}
