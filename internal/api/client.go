// Package api implements the HTTP transport shared by every
// authorized call the client makes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// TokenFunc returns the current bearer credential, or "" when the
// session is unauthenticated. It is consulted on every request so a
// logout can never leak a stale header into a later request.
type TokenFunc func() string

// Client issues JSON requests against the API base path.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	token          TokenFunc
	onUnauthorized func()
}

// NewClient constructs a Client for the given base URL. A zero
// timeout falls back to the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetAuth wires the credential source and the hook invoked when an
// authorized request comes back unauthorized. The hook fires before
// the error is returned to the caller.
func (c *Client) SetAuth(token TokenFunc, onUnauthorized func()) {
	c.token = token
	c.onUnauthorized = onUnauthorized
}

// Get issues an authorized GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues an authorized POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues an authorized PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindNetwork, err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// The credential is read at send time, never earlier.
	authorized := false
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
			authorized = true
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{
			Kind:       kindForStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Detail:     decodeDetail(resp.Body),
		}
		if resp.StatusCode == http.StatusUnauthorized && authorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{
			Kind:       KindValidation,
			StatusCode: resp.StatusCode,
			Detail:     "malformed server response",
			err:        err,
		}
	}
	return nil
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindValidation
	}
}

// decodeDetail extracts the server's detail message, tolerating
// bodies that are not the expected shape.
func decodeDetail(r io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Detail)
}
