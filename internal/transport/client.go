// Package transport owns all HTTP traffic between an extension and its host
// IDE. It wraps resty with a rate limiter and a circuit breaker, mirroring
// how the host itself talks to external services. Requests are never retried:
// the host decides delivery, the extension only reports.
package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/ExtensionBridge/internal/resilience"
)

// Client wraps resty with rate limiting and circuit breaker protection.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	mu      sync.RWMutex
}

// New creates a client targeting the host endpoint root, e.g.
// "http://127.0.0.1:9100".
func New(baseURL string) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetRetryCount(0).
		SetHeader("User-Agent", "ExtensionBridge/1.0")

	// The host is local; sustained consecutive failures mean it is gone,
	// not flaky.
	breaker := resilience.New("host", resilience.Settings{
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 10
		},
	})

	return &Client{
		resty:   restyClient,
		limiter: rate.NewLimiter(rate.Inf, 0), // unlimited by default
		breaker: breaker,
	}
}

// SetTimeout configures the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.SetTimeout(d)
}

// SetRateLimit configures outbound rate limiting (requests per second).
// Zero or negative removes the limit.
func (c *Client) SetRateLimit(rps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
	} else {
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

// BaseURL returns the configured host endpoint root.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resty.BaseURL
}

// BreakerState returns the current circuit breaker state.
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// request creates a new request bound to ctx, honoring the rate limiter.
// The limiter pointer is snapshotted under the lock so SetRateLimit can swap
// it while requests are in flight; Wait must not hold the lock since it
// blocks.
func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	c.mu.RLock()
	limiter := c.limiter
	c.mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resty.R().SetContext(ctx), nil
}

// Get issues a GET against path (relative to the base URL) with breaker
// protection and returns the raw response.
func (c *Client) Get(ctx context.Context, path string) (*resty.Response, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var resp *resty.Response
	err = c.breaker.Execute(func() error {
		var execErr error
		resp, execErr = req.Get(path)
		if execErr != nil {
			return execErr
		}
		if resp.IsError() {
			return fmt.Errorf("host returned %s", resp.Status())
		}
		return nil
	})
	return resp, err
}

// PostJSON issues a POST with a pre-encoded JSON body against path with
// breaker protection and returns the raw response.
func (c *Client) PostJSON(ctx context.Context, path string, body []byte) (*resty.Response, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}
	req.SetHeader("Content-Type", "application/json").SetBody(body)

	var resp *resty.Response
	err = c.breaker.Execute(func() error {
		var execErr error
		resp, execErr = req.Post(path)
		if execErr != nil {
			return execErr
		}
		if resp.IsError() {
			return fmt.Errorf("host returned %s", resp.Status())
		}
		return nil
	})
	return resp, err
}
