package fangraphs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/stats"
	"github.com/riskibarqy/college-baseball-live/internal/platform/resilience"
	"github.com/riskibarqy/college-baseball-live/internal/usecase"
)

func TestClient_Leaderboard(t *testing.T) {
	t.Parallel()

	queries := make(chan url.Values, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries <- r.URL.Query()
		_, _ = w.Write([]byte(`{"data":[{"PlayerName":"Jac Caglianone","Team":"FLA","AVG":0.419,"wRC+":null}],"totalCount":812,"sortStat":"wRC+","sortDir":"desc"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{BaseURL: server.URL, Timeout: time.Second})
	q := stats.Query{TeamID: 57, ConferenceID: "8", Qualified: true}.Normalize(2025)

	board, err := client.Leaderboard(context.Background(), q)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if board.TotalCount != 812 || board.PageSize != 50 || len(board.Rows) != 1 {
		t.Fatalf("unexpected leaderboard: %+v", board)
	}
	if name := board.Rows[0].String("PlayerName"); name != "Jac Caglianone" {
		t.Fatalf("unexpected player: %s", name)
	}

	got := <-queries
	want := map[string]string{
		"position":    "",
		"type":        "0",
		"stats":       "bat",
		"qual":        "y",
		"seasonstart": "2025",
		"seasonend":   "2025",
		"team":        "57",
		"players":     "0",
		"conference":  "0",
		"pageitems":   "50",
		"pagenum":     "1",
		"sortstat":    "wRC+",
		"sortdir":     "desc",
	}
	for key, value := range want {
		if !got.Has(key) || got.Get(key) != value {
			t.Fatalf("unexpected %s: got=%q want=%q", key, got.Get(key), value)
		}
	}
}

func TestClient_LeaderboardRejectsInvalidQuery(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1"})
	_, err := client.Leaderboard(context.Background(), stats.Query{Tab: "fld", SortDir: stats.SortAsc, Page: 1})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestClient_LeaderboardBreaker(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1},
	})
	q := stats.Query{}.Normalize(2025)

	if _, err := client.Leaderboard(context.Background(), q); err == nil {
		t.Fatalf("expected upstream error")
	}
	if _, err := client.Leaderboard(context.Background(), q); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open breaker, got %v", err)
	}
}
