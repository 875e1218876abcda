package notifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/college-baseball-live/internal/domain/notification"
	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
	"github.com/riskibarqy/college-baseball-live/internal/platform/resilience"
)

var errQStashTransient = crerr.New("qstash transient failure")

type QStashConfig struct {
	BaseURL        string
	Token          string
	TargetURL      string
	Retries        int
	ForwardToken   string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	HTTPClient     *http.Client
	Logger         *logging.Logger
}

// QStashNotifier forwards notifications to a push webhook through QStash. The
// notification key is the Upstash deduplication id, so a repeated detection is
// delivered at most once upstream too.
type QStashNotifier struct {
	client       *http.Client
	baseURL      string
	token        string
	targetURL    string
	retries      int
	forwardToken string
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
}

func NewQStashNotifier(cfg QStashConfig) *QStashNotifier {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout, Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	return &QStashNotifier{
		client:       client,
		baseURL:      strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:        strings.TrimSpace(cfg.Token),
		targetURL:    strings.TrimSpace(cfg.TargetURL),
		retries:      cfg.Retries,
		forwardToken: strings.TrimSpace(cfg.ForwardToken),
		logger:       logging.OrDefault(cfg.Logger).Named("notifier.qstash"),
		breaker:      resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
}

func (p *QStashNotifier) Name() string { return "qstash" }

// CanNotify is false while the breaker is open or the notifier is unconfigured.
func (p *QStashNotifier) CanNotify() bool {
	if p.token == "" || p.baseURL == "" || p.targetURL == "" {
		return false
	}
	return p.breaker.State() != resilience.CircuitStateOpen
}

func (p *QStashNotifier) Send(ctx context.Context, item notification.Notification) error {
	if err := p.breaker.Allow(); err != nil {
		p.logger.WarnContext(ctx, "qstash circuit breaker rejected request", "state", p.breaker.State())
		return fmt.Errorf("qstash is temporarily unavailable: %w", err)
	}

	baseURL, err := validateHTTPBaseURL(p.baseURL)
	if err != nil {
		p.breaker.Release()
		return crerr.Wrap(err, "invalid QSTASH_BASE_URL")
	}
	targetURL, err := validateHTTPBaseURL(p.targetURL)
	if err != nil {
		p.breaker.Release()
		return crerr.Wrap(err, "invalid QSTASH_TARGET_URL")
	}
	publishURL := baseURL + "/v2/publish/" + targetURL

	body, err := sonic.Marshal(item)
	if err != nil {
		p.breaker.Release()
		return crerr.Wrap(err, "marshal notification payload")
	}
	bodyText := truncateForLog(string(body), 4096)
	curlPreview := buildQStashCurlPreview(publishURL, p.retries, item.Key, bodyText, p.forwardToken != "")

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("qstash.publish_url", publishURL),
			attribute.String("qstash.target_url", targetURL),
			attribute.String("qstash.deduplication_id", item.Key),
			attribute.String("qstash.request_curl_preview", curlPreview),
		)
	}
	p.logger.DebugContext(ctx, "qstash publish request", "target_url", targetURL, "curl_preview", curlPreview)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, bytes.NewReader(body))
	if err != nil {
		p.breaker.Release()
		return crerr.Wrap(err, "create qstash request")
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Upstash-Method", http.MethodPost)
	if p.retries > 0 {
		req.Header.Set("Upstash-Retries", strconv.Itoa(p.retries))
	}
	if key := strings.TrimSpace(item.Key); key != "" {
		req.Header.Set("Upstash-Deduplication-Id", key)
	}
	if p.forwardToken != "" {
		req.Header.Set("Upstash-Forward-Authorization", "Bearer "+p.forwardToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			p.breaker.Release()
			return ctx.Err()
		}
		p.breaker.RecordFailure()
		return fmt.Errorf("%w: publish notification target_url=%s: %v", errQStashTransient, targetURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if isQStashRetryableStatus(resp.StatusCode) {
			p.breaker.RecordFailure()
			return fmt.Errorf("%w: publish notification status=%d target_url=%s body=%s",
				errQStashTransient, resp.StatusCode, targetURL, strings.TrimSpace(string(raw)))
		}
		p.breaker.RecordSuccess()
		return fmt.Errorf("publish notification status=%d target_url=%s body=%s",
			resp.StatusCode, targetURL, strings.TrimSpace(string(raw)))
	}

	p.breaker.RecordSuccess()
	p.logger.InfoContext(ctx, "qstash notification published", "key", item.Key, "kind", item.Kind)
	return nil
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func buildQStashCurlPreview(publishURL string, retries int, deduplicationID, body string, withForwardToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}
	appendHeader := func(value string) {
		appendPart("-H")
		appendPart(shellQuote(value))
	}

	appendPart("curl -X POST")
	appendPart(shellQuote(publishURL))
	appendHeader("Authorization: Bearer ***")
	appendHeader("Content-Type: application/json")
	appendHeader("Upstash-Method: POST")
	if retries > 0 {
		appendHeader("Upstash-Retries: " + strconv.Itoa(retries))
	}
	if id := strings.TrimSpace(deduplicationID); id != "" {
		appendHeader("Upstash-Deduplication-Id: " + id)
	}
	if withForwardToken {
		appendHeader("Upstash-Forward-Authorization: Bearer ***")
	}
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func isQStashRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
