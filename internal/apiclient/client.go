// Package apiclient talks to the activities service over its fixed HTTP contract.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mcoot/activities-client/internal/model"
)

// DefaultTimeout bounds every request unless overridden
const DefaultTimeout = 30 * time.Second

// Client is an HTTP client for the activities service
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		// Later options modify the copy, never the caller's client
		copied := *hc
		c.httpClient = &copied
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the client logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new API client
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// LoginResult is the body of a successful login
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Activities fetches the full activity directory, in the order the service
// lists it
func (c *Client) Activities(ctx context.Context) ([]model.Activity, error) {
	body, err := c.do(ctx, http.MethodGet, "/activities", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeDirectory(body)
}

// Login exchanges staff credentials for a session token
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	req := map[string]string{
		"username": username,
		"password": password,
	}
	body, err := c.do(ctx, http.MethodPost, "/auth/login", nil, req)
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &result, nil
}

// Logout tells the service to drop the session behind header. The response
// body is ignored.
func (c *Client) Logout(ctx context.Context, header http.Header) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", header, nil)
	return err
}

// Signup enrolls email in activity and returns the service's confirmation
func (c *Client) Signup(ctx context.Context, header http.Header, activity, email string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, actionPath(activity, "signup", email), header, nil)
	if err != nil {
		return "", err
	}
	return decodeMessage(body)
}

// Unregister removes email from activity and returns the service's confirmation
func (c *Client) Unregister(ctx context.Context, header http.Header, activity, email string) (string, error) {
	body, err := c.do(ctx, http.MethodDelete, actionPath(activity, "unregister", email), header, nil)
	if err != nil {
		return "", err
	}
	return decodeMessage(body)
}

// actionPath builds /activities/{name}/{verb}?email={email} with both the
// name and the email escaped
func actionPath(activity, verb, email string) string {
	query := url.Values{"email": []string{email}}
	return "/activities/" + url.PathEscape(activity) + "/" + verb + "?" + query.Encode()
}

// do performs an HTTP request and returns the body of a 2xx response.
// Non-2xx responses become *StatusError; anything that prevents a response
// wraps ErrTransport.
func (c *Client) do(ctx context.Context, method, path string, header http.Header, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}

	c.logger.Debug("request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(respBody),
		}
	}

	return respBody, nil
}

// extractDetail pulls a string "detail" out of an error body. Validation
// errors carry a list there, which is not something to show a user.
func extractDetail(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	detail := gjson.GetBytes(body, "detail")
	if detail.Type != gjson.String {
		return ""
	}
	return detail.String()
}

func decodeMessage(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", ErrDecode
	}
	result := gjson.ParseBytes(body)
	if !result.IsObject() {
		return "", fmt.Errorf("%w: expected an object", ErrDecode)
	}
	return result.Get("message").String(), nil
}
