package fangraphs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/college-baseball-live/internal/domain/stats"
	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
	"github.com/riskibarqy/college-baseball-live/internal/platform/resilience"
	"github.com/riskibarqy/college-baseball-live/internal/usecase"
)

const (
	DefaultBaseURL = "https://www.fangraphs.com/api/leaders/college/data"
	defaultTimeout = 8 * time.Second
	maxBodyBytes   = 6 << 20
)

var errFanGraphsTransient = crerr.New("fangraphs transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the FanGraphs college leaderboard.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	timeout    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight[stats.Leaderboard]
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "college-baseball-live",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxBodyBytes,
		}
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		timeout:    timeout,
		logger:     logging.OrDefault(cfg.Logger).Named("fangraphs"),
		breaker:    resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
}

type leaderboardEnvelope struct {
	Data       []map[string]any `json:"data"`
	TotalCount int              `json:"totalCount"`
	SortStat   string           `json:"sortStat"`
	SortDir    string           `json:"sortDir"`
}

// LeaderboardURL renders the query parameters the leaderboard expects.
func (c *Client) LeaderboardURL(q stats.Query) string {
	qual := "0"
	if q.Qualified {
		qual = "y"
	}
	values := url.Values{}
	values.Set("position", "")
	values.Set("type", "0")
	values.Set("stats", string(q.Tab))
	values.Set("qual", qual)
	values.Set("seasonstart", strconv.Itoa(q.Season))
	values.Set("seasonend", strconv.Itoa(q.Season))
	values.Set("team", strconv.Itoa(q.TeamID))
	values.Set("players", "0")
	values.Set("conference", q.ConferenceID)
	values.Set("pageitems", strconv.Itoa(stats.PageSize))
	values.Set("pagenum", strconv.Itoa(q.Page))
	values.Set("sortstat", q.SortStat)
	values.Set("sortdir", string(q.SortDir))
	return c.baseURL + "?" + values.Encode()
}

// Leaderboard expects a normalized query.
func (c *Client) Leaderboard(ctx context.Context, q stats.Query) (stats.Leaderboard, error) {
	if err := q.Validate(); err != nil {
		return stats.Leaderboard{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	fullURL := c.LeaderboardURL(q)

	board, err, _ := c.flight.Do(fullURL, func() (stats.Leaderboard, error) {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fangraphs circuit breaker rejected request", "state", c.breaker.State())
			return stats.Leaderboard{}, fmt.Errorf("%w: fangraphs is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		board, reqErr := c.fetch(ctx, fullURL)
		switch {
		case reqErr == nil:
			c.breaker.RecordSuccess()
		case crerr.Is(reqErr, errFanGraphsTransient):
			c.breaker.RecordFailure()
		case ctx.Err() != nil:
			c.breaker.Release()
		default:
			c.breaker.RecordSuccess()
		}
		return board, reqErr
	})
	if err != nil {
		return stats.Leaderboard{}, fmt.Errorf("fetch leaderboard tab=%s page=%d: %w", q.Tab, q.Page, err)
	}
	return board, nil
}

func (c *Client) fetch(ctx context.Context, fullURL string) (stats.Leaderboard, error) {
	if err := ctx.Err(); err != nil {
		return stats.Leaderboard{}, err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.httpClient.DoTimeout(req, resp, timeout); err != nil {
		c.logger.WarnContext(ctx, "fangraphs request failed", "error", err)
		return stats.Leaderboard{}, fmt.Errorf("%w: send request: %v", errFanGraphsTransient, err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		body := abbreviateBody(resp.Body())
		c.logger.WarnContext(ctx, "fangraphs request failed", "status", status, "body", body)
		if status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError {
			return stats.Leaderboard{}, fmt.Errorf("%w: provider status=%d body=%s", errFanGraphsTransient, status, body)
		}
		return stats.Leaderboard{}, fmt.Errorf("provider status=%d body=%s", status, body)
	}

	var envelope leaderboardEnvelope
	if err := sonic.Unmarshal(resp.Body(), &envelope); err != nil {
		return stats.Leaderboard{}, fmt.Errorf("decode leaderboard payload: %w", err)
	}

	rows := make([]stats.Row, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		rows = append(rows, stats.Row(item))
	}
	return stats.Leaderboard{
		Rows:       rows,
		TotalCount: envelope.TotalCount,
		SortStat:   envelope.SortStat,
		SortDir:    envelope.SortDir,
		PageSize:   stats.PageSize,
	}, nil
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
