package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/keepmoving/internal/logger"
	"github.com/julianstephens/keepmoving/internal/models"
)

// RequestIDHeader carries a per-request UUID so client and server logs can be matched
const RequestIDHeader = "X-Request-ID"

// ErrInvalidBaseURL is returned by New when the API URL cannot be used
var ErrInvalidBaseURL = errors.New("invalid API base URL")

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s failed with status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to the goals API
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// New creates a Client for the API rooted at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidBaseURL, baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client was built with
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// CreateGoal registers a new weekly goal. The response body is ignored.
func (c *Client) CreateGoal(ctx context.Context, input models.CreateGoalInput) error {
	return c.do(ctx, http.MethodPost, "/goals", input, nil)
}

// PendingGoals lists the goals not yet completed this week
func (c *Client) PendingGoals(ctx context.Context) ([]models.PendingGoal, error) {
	var body struct {
		PendingGoals []models.PendingGoal `json:"pendingGoals"`
	}
	if err := c.do(ctx, http.MethodGet, "/pending-goals", nil, &body); err != nil {
		return nil, err
	}
	if body.PendingGoals == nil {
		return []models.PendingGoal{}, nil
	}
	return body.PendingGoals, nil
}

// Summary returns the weekly progress summary
func (c *Client) Summary(ctx context.Context) (models.Summary, error) {
	var body struct {
		Summary models.Summary `json:"summary"`
	}
	if err := c.do(ctx, http.MethodGet, "/summary", nil, &body); err != nil {
		return models.Summary{}, err
	}
	return body.Summary, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		logger.Warn("API request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	logger.Debug("API request completed", "method", method, "path", path, "status", res.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: res.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
