package pathfinder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/UnknownOlympus/meridian/internal/models"
)

const defaultBackoff = 200 * time.Millisecond

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the pathfinding backend over HTTP.
type Client struct {
	client  HTTPClient
	baseURL string
	retries int
	backoff time.Duration
	log     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBackoff sets the delay before the first retry. It doubles after every attempt.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// NewClient creates a backend client with its own http.Client.
func NewClient(baseURL string, timeout time.Duration, retries int, log *slog.Logger, opts ...Option) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: timeout}, baseURL, retries, log, opts...)
}

// NewClientWithHTTP allows injecting a custom HTTP client.
func NewClientWithHTTP(client HTTPClient, baseURL string, retries int, log *slog.Logger, opts ...Option) *Client {
	if retries < 0 {
		retries = 0
	}
	c := &Client{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		retries: retries,
		backoff: defaultBackoff,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindPath asks the backend for a path and validates the answer.
func (c *Client) FindPath(ctx context.Context, req Request) (*models.PathResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode path request: %w", err)
	}

	c.log.DebugContext(ctx, "Requesting path",
		"algorithm", req.Algorithm, "waypoints", len(req.Waypoints))

	body, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, "/api/path", bytes.NewReader(payload))
	})
	if err != nil {
		return nil, err
	}

	result, err := decodePathResult(body)
	if err != nil {
		c.log.ErrorContext(ctx, "Pathfinder returned an invalid response", "error", err)
		return nil, err
	}

	return result, nil
}

// Health reports the backend health payload.
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var status models.HealthStatus
	if err = json.Unmarshal(body, &status); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if status.Status == "" {
		return nil, &SchemaError{Field: "status", Reason: "is required"}
	}

	return &status, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do executes req and returns the body of a 2xx answer.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute pathfinder request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp.StatusCode, body)
	}

	return body, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx answers)
// using exponential backoff while respecting context cancellation.
func (c *Client) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) ([]byte, error) {
	maxAttempts := c.retries + 1
	backoff := c.backoff

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, err
		}

		body, err := c.do(req)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(err) || attempt == maxAttempts {
			return nil, lastErr
		}

		c.log.WarnContext(ctx, "Pathfinder request failed, retrying",
			"attempt", attempt, "backoff", backoff, "error", err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
