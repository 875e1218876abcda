package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/college-baseball-live/internal/domain/stats"
	"github.com/riskibarqy/college-baseball-live/internal/platform/poller"
)

// StatsService polls one leaderboard page at a time. Changing the query
// re-keys the poller, which drops the previous page and loads the new one.
type StatsService struct {
	source LeaderboardSource
	poller *poller.Poller[stats.Leaderboard]
	opts   Options

	mu    sync.Mutex
	query stats.Query
}

func NewStatsService(source LeaderboardSource, opts Options) *StatsService {
	opts = opts.normalize()
	s := &StatsService{
		source: source,
		poller: poller.New[stats.Leaderboard](opts.pollerOptions("stats", opts.Intervals.Stats)),
		opts:   opts,
	}
	s.query = stats.Query{}.Normalize(s.defaultSeason())
	s.poller.SetFetcher(s.query.Key(), s.fetcher(s.query))
	return s
}

func (s *StatsService) defaultSeason() int {
	return s.opts.Now().In(s.opts.Location).Year()
}

func (s *StatsService) fetcher(q stats.Query) poller.Fetcher[stats.Leaderboard] {
	return func(ctx context.Context) (stats.Leaderboard, error) {
		ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.fetch")
		defer span.End()
		return s.source.Leaderboard(ctx, q)
	}
}

func (s *StatsService) Poller() *poller.Poller[stats.Leaderboard] {
	return s.poller
}

// SetQuery normalizes q and switches the poller to it. A school filter clears
// the conference filter before validation.
func (s *StatsService) SetQuery(q stats.Query) (stats.Query, error) {
	q = q.Normalize(s.defaultSeason())
	if err := q.Validate(); err != nil {
		return stats.Query{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	s.query = q
	s.mu.Unlock()

	s.poller.SetFetcher(q.Key(), s.fetcher(q))
	return q, nil
}

func (s *StatsService) Query() stats.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Leaderboard selects q and waits for its first page.
func (s *StatsService) Leaderboard(ctx context.Context, q stats.Query) (stats.Query, poller.Snapshot[stats.Leaderboard], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Leaderboard")
	defer span.End()

	normalized, err := s.SetQuery(q)
	if err != nil {
		return stats.Query{}, poller.Snapshot[stats.Leaderboard]{}, err
	}
	if err := s.poller.WaitLoaded(ctx); err != nil {
		return normalized, poller.Snapshot[stats.Leaderboard]{}, err
	}
	return normalized, s.poller.Snapshot(), nil
}
