package notifier

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/notification"
	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
	"github.com/riskibarqy/college-baseball-live/internal/platform/resilience"
)

type capturedRequest struct {
	path   string
	header http.Header
	body   string
}

func TestQStashNotifier_Send(t *testing.T) {
	t.Parallel()

	requests := make(chan capturedRequest, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests <- capturedRequest{path: r.URL.Path, header: r.Header.Clone(), body: string(body)}
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	n := NewQStashNotifier(QStashConfig{
		BaseURL:      server.URL,
		Token:        "secret",
		TargetURL:    "https://push.example.com/hooks/baseball",
		Retries:      3,
		ForwardToken: "hook-token",
		Logger:       logging.NewNop(),
	})
	if !n.CanNotify() {
		t.Fatalf("expected configured notifier to be ready")
	}

	item := notification.Notification{Key: "score-401-3-2", Kind: notification.KindScoreChange, GameID: "401", Title: "LSU Scores!"}
	if err := n.Send(context.Background(), item); err != nil {
		t.Fatalf("send: %v", err)
	}

	got := <-requests
	if got.path != "/v2/publish/https://push.example.com/hooks/baseball" {
		t.Fatalf("unexpected publish path: %s", got.path)
	}
	checks := map[string]string{
		"Authorization":                 "Bearer secret",
		"Upstash-Method":                "POST",
		"Upstash-Retries":               "3",
		"Upstash-Deduplication-Id":      "score-401-3-2",
		"Upstash-Forward-Authorization": "Bearer hook-token",
	}
	for key, want := range checks {
		if value := got.header.Get(key); value != want {
			t.Fatalf("unexpected header %s: got=%q want=%q", key, value, want)
		}
	}
	if !strings.Contains(got.body, `"gameId":"401"`) {
		t.Fatalf("unexpected body: %s", got.body)
	}
}

func TestQStashNotifier_TransientFailureOpensBreaker(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	n := NewQStashNotifier(QStashConfig{
		BaseURL:        server.URL,
		Token:          "secret",
		TargetURL:      "https://push.example.com/hook",
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1},
	})

	err := n.Send(context.Background(), notification.Notification{Key: "end-1"})
	if !errors.Is(err, errQStashTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if n.CanNotify() {
		t.Fatalf("expected open breaker to stop notifications")
	}
	if err := n.Send(context.Background(), notification.Notification{Key: "end-1"}); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit error, got %v", err)
	}
}

func TestQStashNotifier_UnconfiguredCannotNotify(t *testing.T) {
	t.Parallel()

	n := NewQStashNotifier(QStashConfig{BaseURL: "https://qstash.upstash.io"})
	if n.CanNotify() {
		t.Fatalf("expected notifier without token to refuse")
	}
}

func TestBuildQStashCurlPreview(t *testing.T) {
	t.Parallel()

	got := buildQStashCurlPreview("https://q/v2/publish/https://t", 2, "start-1", `{"title":"it's on"}`, true)
	for _, want := range []string{
		"curl -X POST 'https://q/v2/publish/https://t'",
		"'Authorization: Bearer ***'",
		"'Upstash-Retries: 2'",
		"'Upstash-Deduplication-Id: start-1'",
		`'{"title":"it'"'"'s on"}'`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("preview missing %q: %s", want, got)
		}
	}
}
