package espn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
	"github.com/riskibarqy/college-baseball-live/internal/platform/resilience"
	"github.com/riskibarqy/college-baseball-live/internal/usecase"
)

const (
	defaultTimeout = 8 * time.Second
	maxBodyBytes   = 6 << 20
)

type ClientConfig struct {
	HTTPClient       *http.Client
	BaseURL          string
	StandingsBaseURL string
	Timeout          time.Duration
	Logger           *logging.Logger
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// Client talks to the public ESPN site API. It never retries; the next poll
// tick is the retry.
type Client struct {
	httpClient *http.Client
	endpoints  Endpoints
	timeout    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight[any]
}

func NewClient(cfg ClientConfig) *Client {
	logger := logging.OrDefault(cfg.Logger).Named("espn")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("espn circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient: httpClient,
		endpoints:  NewEndpoints(cfg.BaseURL, cfg.StandingsBaseURL),
		timeout:    timeout,
		logger:     logger,
		breaker:    breaker,
	}
}

func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// FetchJSON performs one GET and decodes the body schema-less. Concurrent
// calls for the same URL share one request. The shared request is detached
// from any single caller's cancellation and bounded by the client timeout;
// ctx only bounds how long this caller waits.
func (c *Client) FetchJSON(ctx context.Context, url string) (any, error) {
	type result struct {
		doc any
		err error
	}
	detached := context.WithoutCancel(ctx)
	done := make(chan result, 1)
	go func() {
		doc, err, _ := c.flight.Do(url, func() (any, error) {
			if err := c.breaker.Allow(); err != nil {
				c.logger.WarnContext(detached, "espn circuit breaker rejected request", "state", c.breaker.State(), "url", url)
				return nil, fmt.Errorf("%w: espn is temporarily unavailable", usecase.ErrDependencyUnavailable)
			}
			doc, reqErr := c.execute(detached, url)
			c.recordOutcome(reqErr)
			return doc, reqErr
		})
		done <- result{doc: doc, err: err}
	}()

	select {
	case r := <-done:
		return r.doc, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) execute(ctx context.Context, url string) (any, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, reqCtx, url, crerr.Wrapf(err, "send request"))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.transportError(ctx, reqCtx, url, crerr.Wrapf(err, "read response body"))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fetchErr := &FetchError{Status: resp.StatusCode, URL: url, Body: abbreviateBody(raw)}
		c.logger.WarnContext(ctx, "espn request failed", "url", url, "status", resp.StatusCode, "body", fetchErr.Body)
		return nil, fetchErr
	}

	var doc any
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode espn payload: %w", err)
	}
	return doc, nil
}

// transportError tells a caller cancellation apart from an upstream timeout.
func (c *Client) transportError(ctx, reqCtx context.Context, url string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	fetchErr := &FetchError{URL: url, Err: err}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		fetchErr.Timeout = true
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", url, "timeout", fetchErr.Timeout, "error", err)
	return fetchErr
}

func (c *Client) recordOutcome(err error) {
	switch {
	case err == nil:
		c.breaker.RecordSuccess()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrTransient):
		c.breaker.Release()
	case errors.Is(err, ErrTransient):
		c.breaker.RecordFailure()
	default:
		c.breaker.RecordSuccess()
	}
}
