package overpass

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoints is the pool of interchangeable public Overpass
// endpoints, attempted in order.
var DefaultEndpoints = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
	"https://overpass.openstreetmap.fr/api/interpreter",
}

// Common errors for the Overpass client.
var (
	ErrRateLimited        = errors.New("overpass endpoint rate limited")
	ErrBackendStatus      = errors.New("overpass endpoint returned non-success status")
	ErrTransport          = errors.New("overpass request failed")
	ErrEndpointsExhausted = errors.New("all overpass endpoints exhausted")
	ErrNoEndpoints        = errors.New("no overpass endpoints configured")
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryPolicy controls how many sequential attempts a fetch makes and how
// long it waits after each failure class. Keeping the policy separate from
// the endpoint list lets policy and topology be tested independently.
type RetryPolicy struct {
	MaxAttempts    int                             // Total attempts across all endpoints.
	RateLimitDelay func(attempt int) time.Duration // Delay after an HTTP 429.
	ServerDelay    func(attempt int) time.Duration // Delay after any other non-success status.
	NetworkDelay   func(attempt int) time.Duration // Delay after a transport-level failure.
}

// maxBackoff caps every exponential delay.
const maxBackoff = 10 * time.Second

// DefaultRetryPolicy returns the production policy: six total attempts,
// exponential backoff from 500ms on rate limits and from 400ms on transport
// failures (both capped at 10s), and a short linear delay on other backend
// errors.
func DefaultRetryPolicy() RetryPolicy {
	const defaultMaxAttempts = 6

	return RetryPolicy{
		MaxAttempts:    defaultMaxAttempts,
		RateLimitDelay: exponentialDelay(500 * time.Millisecond),
		ServerDelay: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * 300 * time.Millisecond
		},
		NetworkDelay: exponentialDelay(400 * time.Millisecond),
	}
}

// exponentialDelay doubles the base delay each attempt, capped at maxBackoff.
func exponentialDelay(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		delay := base << attempt
		if delay > maxBackoff || delay <= 0 {
			delay = maxBackoff
		}
		return delay
	}
}

// Client performs a single logical query against an ordered pool of
// interchangeable Overpass endpoints, tolerating transient failure and
// rate limiting. Attempts are strictly sequential with explicit delays so
// the pool's rate limits are respected; latency is secondary.
type Client struct {
	client    HTTPClient   // HTTP client for making requests
	endpoints []string     // Ordered endpoint pool
	policy    RetryPolicy  // Retry and backoff policy
	log       *slog.Logger // Logger for logging operations
}

// NewClient creates an Overpass client over the given endpoint pool with
// the default HTTP client and retry policy. An empty pool falls back to
// DefaultEndpoints.
func NewClient(endpoints []string, log *slog.Logger) *Client {
	const timeout = 45

	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints
	}

	return &Client{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		endpoints: endpoints,
		policy:    DefaultRetryPolicy(),
		log:       log,
	}
}

// NewClientWithHTTP creates a client with a custom HTTP client and retry
// policy. Useful for testing with mocked HTTP clients and fast delays.
func NewClientWithHTTP(client HTTPClient, endpoints []string, policy RetryPolicy, log *slog.Logger) *Client {
	return &Client{
		client:    client,
		endpoints: endpoints,
		policy:    policy,
		log:       log,
	}
}

// Fetch sends the query to the endpoint pool round-robin until one attempt
// succeeds or the attempt budget is exhausted. The first successful
// response body is returned immediately; exhaustion yields
// ErrEndpointsExhausted wrapping the last underlying cause.
func (c *Client) Fetch(ctx context.Context, query string) ([]byte, error) {
	if len(c.endpoints) == 0 {
		return nil, ErrNoEndpoints
	}

	var lastErr error
	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		endpoint := c.endpoints[attempt%len(c.endpoints)]

		body, err := c.post(ctx, endpoint, query)
		if err == nil {
			c.log.DebugContext(ctx, "Overpass fetch succeeded", "endpoint", endpoint, "attempt", attempt+1)
			return body, nil
		}
		lastErr = err

		var delay time.Duration
		switch {
		case errors.Is(err, ErrRateLimited):
			delay = c.policy.RateLimitDelay(attempt)
		case errors.Is(err, ErrBackendStatus):
			delay = c.policy.ServerDelay(attempt)
		default:
			delay = c.policy.NetworkDelay(attempt)
		}

		c.log.WarnContext(ctx, "Overpass attempt failed",
			"endpoint", endpoint,
			"attempt", attempt+1,
			"backoff", delay,
			"error", err,
		)

		if err = sleepContext(ctx, delay); err != nil {
			return nil, fmt.Errorf("fetch canceled during backoff: %w", err)
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrEndpointsExhausted, lastErr)
}

// post performs one attempt against one endpoint and classifies its
// failure via the package sentinel errors.
func (c *Client) post(ctx context.Context, endpoint, query string) ([]byte, error) {
	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTransport, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, endpoint)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrBackendStatus, endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// sleepContext waits for the delay or the context, whichever ends first.
func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
