package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"trip-gateway/internal/metrics"
	"trip-gateway/internal/models"
)

const (
	DefaultBaseURL     = "https://api.spacexdata.com/v2/"
	DefaultTimeout     = 10 * time.Second
	DefaultParallelism = 8

	maxBodyBytes = 16 << 20
)

// Client reads launches from the catalog REST API. Responses are cached for
// the lifetime of the Client, so build one per request to keep requests apart.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	parallelism int
	logger      *zap.Logger
	metrics     *metrics.Metrics

	mu    sync.RWMutex
	cache map[string][]byte
	group singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every catalog round trip.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithParallelism caps concurrent fetches in a batch lookup.
func WithParallelism(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.parallelism = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:     baseURL,
		httpClient:  http.DefaultClient,
		timeout:     DefaultTimeout,
		parallelism: DefaultParallelism,
		logger:      zap.NewNop(),
		cache:       make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpointURL(path string, query url.Values) (string, error) {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return "", errors.Wrapf(err, "join catalog url %q", path)
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u, nil
}

// fetch returns the body for rawURL, from the cache when possible.
// Concurrent fetches of the same URL share one round trip. The shared round
// trip is bounded by the client timeout, not by any one caller's ctx, so a
// caller that gives up does not fail the others waiting on it.
func (c *Client) fetch(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	if body, ok := c.cached(rawURL); ok {
		c.metrics.CacheLookup(true)
		return body, nil
	}
	c.metrics.CacheLookup(false)

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(rawURL, func() (interface{}, error) {
		if body, ok := c.cached(rawURL); ok {
			return body, nil
		}
		body, err := c.do(shared, endpoint, rawURL)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cache[rawURL] = body
		c.mu.Unlock()
		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), "GET %s", rawURL)
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Client) cached(rawURL string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	body, ok := c.cache[rawURL]
	return body, ok
}

func (c *Client) do(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for %s", rawURL)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.unavailable(endpoint, rawURL, start, err)
		return nil, errors.Wrapf(models.ErrUpstreamUnavailable, "GET %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("status %d", resp.StatusCode)
		c.unavailable(endpoint, rawURL, start, err)
		return nil, errors.Wrapf(models.ErrUpstreamUnavailable, "GET %s: %v", rawURL, err)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.unavailable(endpoint, rawURL, start, err)
		return nil, errors.Wrapf(models.ErrUpstreamUnavailable, "read %s: %v", rawURL, err)
	}

	c.logger.Debug("catalog fetch",
		zap.String("url", rawURL),
		zap.Int("bytes", len(body)),
		zap.Duration("took", time.Since(start)))
	c.metrics.CatalogRequest(endpoint, "ok", time.Since(start).Seconds())
	return body, nil
}

func (c *Client) unavailable(endpoint, rawURL string, start time.Time, err error) {
	c.logger.Warn("catalog unavailable", zap.String("url", rawURL), zap.Error(err))
	c.metrics.CatalogRequest(endpoint, "unavailable", time.Since(start).Seconds())
}

// decodeCollection splits a response body into records. ok is false when the
// body is not a JSON array.
func decodeCollection(body []byte) (records []json.RawMessage, ok bool) {
	if err := json.Unmarshal(body, &records); err != nil || records == nil {
		return nil, false
	}
	return records, true
}
