// Package proxy fetches product pages through a cascade of public fetch proxies.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dealscout/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout      = 15 * time.Second
	DefaultMaxBodyBytes = 5 << 20
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	Providers         []Provider
	Policy            *AcceptancePolicy
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64 // <= 0 disables outbound limiting
	Burst             int
	MaxBodyBytes      int64
}

// Client walks the provider list in order and returns the first acceptable page
type Client struct {
	httpClient  Doer
	providers   []Provider
	policy      AcceptancePolicy
	timeout     time.Duration
	userAgent   string
	maxBody     int64
	rateLimiter *rate.Limiter
	logger      *zap.Logger
	observer    domain.ExtractionObserver
}

// NewClient creates a proxy cascade client
func NewClient(opts Options, logger *zap.Logger, observer domain.ExtractionObserver) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	providers := opts.Providers
	if len(providers) == 0 {
		providers = DefaultProviders
	}

	policy := DefaultAcceptancePolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		providers:   providers,
		policy:      policy,
		timeout:     timeout,
		userAgent:   userAgent,
		maxBody:     maxBody,
		rateLimiter: rate.NewLimiter(limit, burst),
		logger:      logger.Named("proxy"),
		observer:    observer,
	}
}

// SetHTTPClient replaces the underlying HTTP client
func (c *Client) SetHTTPClient(d Doer) {
	c.httpClient = d
}

// Providers returns the configured cascade in order
func (c *Client) Providers() []Provider {
	out := make([]Provider, len(c.providers))
	copy(out, c.providers)
	return out
}

// Fetch tries every provider once, in order. The error wraps
// domain.ErrProxyExhausted when none returned acceptable content.
func (c *Client) Fetch(ctx context.Context, targetURL string) (*domain.FetchResult, error) {
	u, err := url.Parse(targetURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidURL, targetURL)
	}

	lastErr := errors.New("no providers configured")
	for _, p := range c.providers {
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}

		result, err := c.attempt(ctx, p, targetURL)
		if err != nil {
			lastErr = err
			continue
		}
		return result, nil
	}

	c.logger.Warn("all proxies failed",
		zap.String("url", targetURL),
		zap.Int("providers", len(c.providers)),
		zap.Error(lastErr),
	)
	if c.observer != nil {
		c.observer.Observe(domain.ExtractionEvent{
			ExtractionID: domain.ExtractionIDFrom(ctx),
			URL:          targetURL,
			Stage:        domain.StageFetch,
			Outcome:      domain.OutcomeExhausted,
			Detail:       lastErr.Error(),
		})
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrProxyExhausted, lastErr)
}

func (c *Client) attempt(ctx context.Context, p Provider, targetURL string) (*domain.FetchResult, error) {
	start := time.Now()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.doRequest(attemptCtx, p.URLFor(targetURL))
	if err != nil {
		c.report(ctx, p, targetURL, domain.OutcomeError, err.Error(), start)
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := fmt.Errorf("%w: %s returned status %d", domain.ErrUnusableContent, p.Name, resp.StatusCode)
		c.report(ctx, p, targetURL, domain.OutcomeError, fmt.Sprintf("status %d", resp.StatusCode), start)
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		c.report(ctx, p, targetURL, domain.OutcomeError, err.Error(), start)
		return nil, fmt.Errorf("%s: failed to read body: %w", p.Name, err)
	}

	html := string(body)
	switch verdict := c.policy.Evaluate(html); verdict {
	case VerdictFull, VerdictPartial:
		outcome := domain.OutcomeAccepted
		if verdict == VerdictPartial {
			outcome = domain.OutcomePartial
		}
		c.report(ctx, p, targetURL, outcome, fmt.Sprintf("%d bytes", len(body)), start)
		return &domain.FetchResult{
			HTML:     html,
			Provider: p.Name,
			Partial:  verdict == VerdictPartial,
		}, nil
	default:
		c.report(ctx, p, targetURL, domain.OutcomeRejected, fmt.Sprintf("%d bytes", len(body)), start)
		return nil, fmt.Errorf("%w: %s returned %d bytes", domain.ErrUnusableContent, p.Name, len(body))
	}
}

// doRequest executes a GET with browser-like headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	return c.httpClient.Do(req)
}

func (c *Client) report(ctx context.Context, p Provider, targetURL string, outcome domain.Outcome, detail string, start time.Time) {
	elapsed := time.Since(start)

	fields := []zap.Field{
		zap.String("provider", p.Name),
		zap.String("outcome", string(outcome)),
		zap.String("detail", detail),
		zap.Duration("elapsed", elapsed),
	}
	if outcome == domain.OutcomeAccepted || outcome == domain.OutcomePartial {
		c.logger.Debug("proxy attempt", fields...)
	} else {
		c.logger.Info("proxy attempt failed", fields...)
	}

	if c.observer == nil {
		return
	}
	c.observer.Observe(domain.ExtractionEvent{
		ExtractionID: domain.ExtractionIDFrom(ctx),
		URL:          targetURL,
		Stage:        domain.StageFetch,
		Outcome:      outcome,
		Provider:     p.Name,
		Detail:       detail,
		Duration:     elapsed,
	})
}
