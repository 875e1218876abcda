package usecase

import (
	"context"

	"github.com/riskibarqy/college-baseball-live/internal/domain/ranking"
	"github.com/riskibarqy/college-baseball-live/internal/platform/poller"
)

type RankingsService struct {
	poller *poller.Poller[[]ranking.RankedTeam]
}

func NewRankingsService(source RankingsSource, opts Options) *RankingsService {
	opts = opts.normalize()
	p := poller.New[[]ranking.RankedTeam](opts.pollerOptions("rankings", opts.Intervals.Rankings))
	p.SetFetcher("rankings", func(ctx context.Context) ([]ranking.RankedTeam, error) {
		ctx, span := startUsecaseSpan(ctx, "usecase.RankingsService.fetch")
		defer span.End()
		return source.Rankings(ctx)
	})
	return &RankingsService{poller: p}
}

func (s *RankingsService) Poller() *poller.Poller[[]ranking.RankedTeam] {
	return s.poller
}

// Snapshot waits for the first load, bounded by ctx, and returns the latest view.
func (s *RankingsService) Snapshot(ctx context.Context) (poller.Snapshot[[]ranking.RankedTeam], error) {
	if err := s.poller.WaitLoaded(ctx); err != nil {
		return poller.Snapshot[[]ranking.RankedTeam]{}, err
	}
	return s.poller.Snapshot(), nil
}
