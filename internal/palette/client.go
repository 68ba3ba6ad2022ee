// Package palette fetches the host account's calendar palette from the
// companion sync endpoint. Entries seed calendar defaults for calendars the
// user has not configured; they are a hint, never an overwrite.
package palette

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = 5 * time.Minute

	// The endpoint serves a static per-account document; one request per
	// 10 seconds with a small burst is plenty.
	requestInterval = 10 * time.Second
	requestBurst    = 3
)

// Entry is one calendar's palette colors as reported by the endpoint.
type Entry struct {
	Background string `json:"background"`
	Text       string `json:"text,omitempty"`
}

// Client is a rate-limited palette fetcher with a short-lived cache.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	endpoint   string
	ttl        time.Duration

	mu        sync.Mutex
	cached    map[string]Entry
	fetchedAt time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithCacheTTL changes how long a fetched palette is reused.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// WithTimeout changes the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// New creates a palette client for the given endpoint.
func New(endpoint string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:  rate.NewLimiter(rate.Every(requestInterval), requestBurst),
		logger:   logger,
		endpoint: endpoint,
		ttl:      defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Palette returns the account's palette keyed by calendar id, serving from
// cache while it is fresh.
func (c *Client) Palette(ctx context.Context) (map[string]Entry, error) {
	c.mu.Lock()
	if c.cached != nil && time.Since(c.fetchedAt) < c.ttl {
		cached := c.cached
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	fetched, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cached = fetched
	c.fetchedAt = time.Now()
	c.mu.Unlock()
	return fetched, nil
}

// Invalidate drops the cached palette so the next Palette call refetches.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

func (c *Client) fetch(ctx context.Context) (map[string]Entry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching palette", "endpoint", c.endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch palette: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("palette endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read palette response: %w", err)
	}

	var palette map[string]Entry
	if err := json.Unmarshal(body, &palette); err != nil {
		return nil, fmt.Errorf("parse palette response: %w", err)
	}

	c.logger.Debug("palette fetched", "calendars", len(palette))
	return palette, nil
}
