package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/domain/gamedetail"
	"github.com/riskibarqy/college-baseball-live/internal/platform/poller"
)

// GameDetailService polls the summary of the game being viewed. The poller
// stays disabled while no event is selected and runs at the live interval
// only while the game is in progress.
type GameDetailService struct {
	source SummarySource
	poller *poller.Poller[gamedetail.Summary]
	opts   Options
}

func NewGameDetailService(source SummarySource, opts Options) *GameDetailService {
	opts = opts.normalize()
	popts := opts.pollerOptions("game_detail", opts.Intervals.Idle)
	popts.Disabled = true
	s := &GameDetailService{
		source: source,
		poller: poller.New[gamedetail.Summary](popts),
		opts:   opts,
	}
	s.poller.OnUpdate(func(snap poller.Snapshot[gamedetail.Summary]) {
		if snap.Data.HasGame && snap.Data.Game.Status.State == game.StateIn {
			s.poller.SetInterval(s.opts.Intervals.Live)
			return
		}
		s.poller.SetInterval(s.opts.Intervals.Idle)
	})
	return s
}

func (s *GameDetailService) Poller() *poller.Poller[gamedetail.Summary] {
	return s.poller
}

// Select points the poller at eventID. An empty id disables polling.
func (s *GameDetailService) Select(eventID string) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		s.poller.SetEnabled(false)
		return
	}
	s.poller.SetFetcher(eventID, func(ctx context.Context) (gamedetail.Summary, error) {
		ctx, span := startUsecaseSpan(ctx, "usecase.GameDetailService.fetch")
		defer span.End()
		return s.source.Summary(ctx, eventID)
	})
	s.poller.SetEnabled(true)
}

// Summary selects eventID, waits for its first load and returns the latest
// snapshot along with the most recent plays.
func (s *GameDetailService) Summary(ctx context.Context, eventID string) (poller.Snapshot[gamedetail.Summary], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameDetailService.Summary")
	defer span.End()

	if strings.TrimSpace(eventID) == "" {
		return poller.Snapshot[gamedetail.Summary]{}, ErrInvalidInput
	}
	s.Select(eventID)
	if err := s.poller.WaitLoaded(ctx); err != nil {
		return poller.Snapshot[gamedetail.Summary]{}, err
	}
	snap := s.poller.Snapshot()
	if snap.HasData {
		snap.Data.Plays = gamedetail.RecentPlays(snap.Data.Plays, gamedetail.MaxRecentPlays)
	}
	return snap, nil
}
