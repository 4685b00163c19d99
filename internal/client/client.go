// Package client talks to the platform's REST API. It adds bearer auth, an
// outbound rate limit and retries with backoff, and adapts list endpoints to
// the coordinator's Fetcher contract.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"querydeck/internal/domain"
)

// ErrNoBaseURL is returned by New when no API address is configured
var ErrNoBaseURL = errors.New("base URL is required")

// APIPrefix is prepended to every resource path
const APIPrefix = "/api"

// Config configures a Client
type Config struct {
	BaseURL           string
	Token             string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables the limiter
	Retry             RetryConfig
}

// RetryConfig configures retry behavior
type RetryConfig struct {
	MaxRetries  int
	RetryDelay  time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
	ShouldRetry func(resp *http.Response, err error) bool
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:  2,
		RetryDelay:  200 * time.Millisecond,
		MaxDelay:    2 * time.Second,
		Multiplier:  2.0,
		ShouldRetry: retryable,
	}
}

// retryable retries transport failures, 5xx and 429. A cancelled context is
// never retried: the request was superseded.
func retryable(resp *http.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	return resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
}

// Client is a small JSON client for the platform API
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	token      string
	limiter    *rate.Limiter
	retry      RetryConfig
	logger     *zap.Logger
}

// New creates a client
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retry.Multiplier <= 0 {
		cfg.Retry.Multiplier = 2.0
	}
	if cfg.Retry.ShouldRetry == nil {
		cfg.Retry.ShouldRetry = retryable
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    base,
		token:      cfg.Token,
		retry:      cfg.Retry,
		logger:     logger.Named("client"),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := int(math.Max(1, math.Ceil(cfg.RequestsPerSecond)))
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return c, nil
}

// BaseURL returns the API address the client was configured with
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Get fetches path with params and decodes the JSON body into out. Non-2xx
// responses become *domain.StatusError carrying the server's message.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	u, err := c.buildURL(path, params)
	if err != nil {
		return fmt.Errorf("building URL: %w", err)
	}

	status, body, err := c.do(ctx, u)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return statusError(status, body)
	}
	if status == http.StatusNoContent || out == nil || len(body) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// do executes a GET with rate limiting and retries and returns the final
// status and body.
func (c *Client) do(ctx context.Context, u *url.URL) (int, []byte, error) {
	var (
		status int
		body   []byte
		err    error
	)
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.calculateBackoff(attempt)
			c.logger.Debug("retrying request",
				zap.String("url", u.Path),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Int("status", status),
				zap.Error(err))
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return 0, nil, ctx.Err()
			case <-timer.C:
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return 0, nil, err
			}
		}

		var resp *http.Response
		resp, err = c.send(ctx, u)
		status, body = 0, nil
		if err == nil {
			status = resp.StatusCode
			body, err = io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				err = fmt.Errorf("reading response body: %w", err)
			}
		}

		if attempt < c.retry.MaxRetries && c.retry.ShouldRetry(resp, err) {
			continue
		}
		break
	}
	if err != nil {
		return 0, nil, err
	}
	return status, body, nil
}

func (c *Client) send(ctx context.Context, u *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "querydeck")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.httpClient.Do(req)
}

// buildURL joins the base URL, the /api prefix and path
func (c *Client) buildURL(path string, params url.Values) (*url.URL, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasPrefix(path, APIPrefix+"/") {
		path = APIPrefix + path
	}

	u, err := url.Parse(c.baseURL.String() + path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u, nil
}

// calculateBackoff calculates the backoff delay for the given attempt
func (c *Client) calculateBackoff(attempt int) time.Duration {
	delay := float64(c.retry.RetryDelay) * math.Pow(c.retry.Multiplier, float64(attempt-1))
	if c.retry.MaxDelay > 0 && delay > float64(c.retry.MaxDelay) {
		delay = float64(c.retry.MaxDelay)
	}
	// ±25% jitter
	jitter := delay * 0.25
	delay = delay + (rand.Float64()*2-1)*jitter
	return time.Duration(delay)
}

type errorBody struct {
	Message string `json:"message"`
}

func statusError(status int, body []byte) *domain.StatusError {
	var eb errorBody
	if len(body) > 0 {
		// The body is informational; a non-JSON error page keeps the bare status.
		_ = sonic.Unmarshal(body, &eb)
	}
	return &domain.StatusError{StatusCode: status, Message: eb.Message}
}
