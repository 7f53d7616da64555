package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/retry"
)

const (
	// DefaultTimeout is the per-attempt HTTP timeout
	DefaultTimeout = 15 * time.Second

	// DefaultMaxAttempts is the default number of attempts per request
	DefaultMaxAttempts = 5

	// DefaultRetryDelay is the fixed delay between attempts
	DefaultRetryDelay = 5 * time.Second

	// DefaultBreakerFailures is the number of consecutive failures that opens the breaker
	DefaultBreakerFailures = 10

	// DefaultBreakerCooldown is how long an open breaker rejects requests
	DefaultBreakerCooldown = 2 * time.Minute

	// maxBodySize bounds every response read.
	maxBodySize = 4 << 20
)

// Options configures a Client. Zero values select the defaults above.
type Options struct {
	Name              string
	UserAgent         string
	Timeout           time.Duration
	Policy            retry.Policy
	RequestsPerMinute int
	BreakerFailures   uint32
	BreakerCooldown   time.Duration
	// NoBreaker disables the circuit breaker. Callers that run their own
	// escalation, such as the reachability probe, must see every failure.
	NoBreaker  bool
	HTTPClient *http.Client
}

// Client performs retried GET requests.
type Client struct {
	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// UserAgent is sent with every request when non-empty
	UserAgent string

	// Policy is the retry budget of every request
	Policy retry.Policy

	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a client from opts.
func NewClient(opts Options) *Client {
	if opts.Name == "" {
		opts.Name = "fetch"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Policy.MaxAttempts <= 0 {
		opts.Policy = retry.Policy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultRetryDelay}
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = DefaultBreakerFailures
	}
	if opts.BreakerCooldown <= 0 {
		opts.BreakerCooldown = DefaultBreakerCooldown
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(opts.RequestsPerMinute) / 60.0)
	}

	var breaker *gobreaker.CircuitBreaker
	if !opts.NoBreaker {
		failures := opts.BreakerFailures
		breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        opts.Name,
			MaxRequests: 1,
			Timeout:     opts.BreakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
		})
	}

	return &Client{
		HTTPClient: httpClient,
		UserAgent:  opts.UserAgent,
		Policy:     opts.Policy,
		limiter:    rate.NewLimiter(limit, 1),
		breaker:    breaker,
	}
}

// GetJSON fetches rawURL and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) error {
	_, err := c.Get(ctx, rawURL, "application/json", func(body []byte) error {
		if err := json.Unmarshal(body, out); err != nil {
			return NewDecodeError("invalid JSON body", redact(rawURL), err)
		}
		return nil
	})
	return err
}

// GetText fetches rawURL and returns the trimmed body.
func (c *Client) GetText(ctx context.Context, rawURL string) (string, error) {
	body, err := c.Get(ctx, rawURL, "text/plain", nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// Get fetches rawURL under the client's retry policy. check, when non-nil,
// validates each body and takes part in the retry decision.
func (c *Client) Get(ctx context.Context, rawURL, accept string, check func([]byte) error) ([]byte, error) {
	op := "GET " + redact(rawURL)
	return retry.Do(ctx, c.Policy, op, func(ctx context.Context) ([]byte, error) {
		body, err := c.attempt(ctx, rawURL, accept)
		if err == nil && check != nil {
			err = check(body)
		}
		if err != nil && !IsRetryable(err) {
			return nil, retry.Permanent(err)
		}
		return body, err
	})
}

func (c *Client) attempt(ctx context.Context, rawURL, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if c.breaker == nil {
		return c.do(ctx, rawURL, accept)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, rawURL, accept)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &RequestError{
				Type:      ErrTypeTransport,
				Message:   "circuit breaker open",
				URL:       redact(rawURL),
				Err:       err,
				Retryable: true,
			}
		}
		return nil, err
	}

	return result.([]byte), nil
}

func (c *Client) do(ctx context.Context, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, ClassifyTransportError(err, redact(rawURL))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, NewStatusError(resp.StatusCode, redact(rawURL))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, ClassifyTransportError(err, redact(rawURL))
	}
	return body, nil
}

// redact drops the query string, which carries API keys.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	return u.String()
}
