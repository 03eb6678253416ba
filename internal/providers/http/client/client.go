package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/GriffinCanCode/bibkit/internal/infrastructure/config"
	"github.com/GriffinCanCode/bibkit/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/bibkit/internal/providers/scraper"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrNotFound is wrapped by a StatusError for 404 and 410 responses
var ErrNotFound = errors.New("resource not found")

// StatusError is returned for non-2xx responses
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// NotFound reports whether the server said the resource does not exist
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone
}

func (e *StatusError) Unwrap() error {
	if e.NotFound() {
		return ErrNotFound
	}
	return nil
}

// IsStatus reports whether err is a *StatusError with the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Observer receives one call per completed upstream request. Status is 0
// when the request failed before a response arrived.
type Observer interface {
	ObserveUpstream(host string, status int, elapsed time.Duration)
}

// Client wraps resty with rate limiting and per-host circuit breakers
type Client struct {
	Resty    *resty.Client
	Limiter  *rate.Limiter
	Breakers *resilience.Group
	Mu       sync.RWMutex

	logger   *zap.Logger
	observer Observer
}

// NewClient creates the publisher client from configuration
func NewClient(cfg config.HTTPClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryCount
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWaitMin).
		SetRetryMaxWaitTime(cfg.RetryWaitMax).
		SetHeader("User-Agent", cfg.UserAgent)

	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	c := &Client{
		Resty:  restyClient,
		logger: logger,
	}
	c.Breakers = resilience.NewGroup(resilience.Settings{
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to resilience.State) {
			c.logger.Warn("publisher breaker state changed",
				zap.String("host", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})
	c.SetRateLimit(cfg.RequestsPerSecond)

	return c
}

// SetRateLimit configures rate limiting (requests per second)
func (c *Client) SetRateLimit(rps float64) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if rps <= 0 {
		c.Limiter = rate.NewLimiter(rate.Inf, 0)
	} else {
		c.Limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	}
}

// SetObserver installs a hook for upstream request metrics
func (c *Client) SetObserver(o Observer) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.observer = o
}

// Request creates new request after waiting on the rate limiter
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	c.Mu.RLock()
	limiter := c.Limiter
	c.Mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	return c.Resty.R().SetContext(ctx), nil
}

// Download fetches rawURL, following redirects, and returns the body decoded
// to UTF-8. Binary bodies come back as "".
func (c *Client) Download(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid download url %q", rawURL)
	}
	host := u.Hostname()

	var resp *resty.Response
	start := time.Now()
	err = c.Breakers.Get(host).Do(func() error {
		req, err := c.Request(ctx)
		if err != nil {
			return err
		}
		resp, err = req.Get(rawURL)
		if err != nil {
			return err
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return c.statusError(rawURL, resp)
		}
		return nil
	})
	c.observe(host, resp, time.Since(start))

	switch {
	case errors.Is(err, resilience.ErrCircuitOpen), errors.Is(err, resilience.ErrTooManyRequests):
		return "", fmt.Errorf("publisher %s unavailable: %w", host, err)
	case err != nil:
		return "", err
	case resp.IsError():
		return "", c.statusError(rawURL, resp)
	}

	c.logger.Debug("downloaded page",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode()),
		zap.Int("bytes", len(resp.Body())),
		zap.Duration("elapsed", resp.Time()))

	return scraper.Decode(resp.Body(), resp.Header().Get("Content-Type"))
}

func (c *Client) statusError(rawURL string, resp *resty.Response) error {
	return &StatusError{URL: rawURL, StatusCode: resp.StatusCode(), Status: resp.Status()}
}

func (c *Client) observe(host string, resp *resty.Response, elapsed time.Duration) {
	c.Mu.RLock()
	o := c.observer
	c.Mu.RUnlock()
	if o == nil {
		return
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}
	o.ObserveUpstream(host, status, elapsed)
}

// BreakerState returns the breaker state for a host
func (c *Client) BreakerState(host string) resilience.State {
	return c.Breakers.Get(host).State()
}
