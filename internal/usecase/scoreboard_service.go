package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/platform/dates"
	"github.com/riskibarqy/college-baseball-live/internal/platform/poller"
)

// ScoreboardSnapshot is the consumer view of one scoreboard day.
// PreviousGames is the result of the poll before the latest one, which is
// what change detection compares against.
type ScoreboardSnapshot struct {
	Date          time.Time
	Games         []game.Game
	PreviousGames []game.Game
	HasLiveGames  bool
	HasData       bool
	IsLoading     bool
	Err           error
	UpdatedAt     time.Time
}

type ScoreboardFilter struct {
	Status        game.StatusFilter
	ConferenceID  string
	FavoritesOnly bool
}

// ScoreboardService polls the scoreboard of the selected day. The poll runs
// at the live interval while any game is in progress and at the idle interval
// otherwise.
type ScoreboardService struct {
	source      ScoreboardSource
	conferences *TeamConferenceService
	prefs       *PreferenceService
	poller      *poller.Poller[[]game.Game]
	opts        Options

	mu        sync.RWMutex
	date      time.Time
	minGen    uint64
	previous  []game.Game
	current   []game.Game
	listeners []func(previous, current []game.Game)
}

func NewScoreboardService(source ScoreboardSource, conferences *TeamConferenceService, prefs *PreferenceService, opts Options) *ScoreboardService {
	opts = opts.normalize()
	s := &ScoreboardService{
		source:      source,
		conferences: conferences,
		prefs:       prefs,
		poller:      poller.New[[]game.Game](opts.pollerOptions("scoreboard", opts.Intervals.Idle)),
		opts:        opts,
	}
	s.poller.OnUpdate(s.handleUpdate)
	s.SetDate(dates.Today(opts.Now(), opts.Location))
	return s
}

func (s *ScoreboardService) Poller() *poller.Poller[[]game.Game] {
	return s.poller
}

// SetDate selects the day to poll. A different day drops the previous and
// current snapshots so change detection never compares across days.
func (s *ScoreboardService) SetDate(date time.Time) time.Time {
	day := dates.StartOfDay(date.In(s.opts.Location))
	key := dates.ToUpstream(day)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.date.IsZero() && dates.SameDay(s.date, day) {
		return s.date
	}
	s.date = day
	s.previous = nil
	s.current = nil
	s.poller.SetFetcher(key, func(ctx context.Context) ([]game.Game, error) {
		ctx, span := startUsecaseSpan(ctx, "usecase.ScoreboardService.fetch")
		defer span.End()
		return s.source.Scoreboard(ctx, day)
	})
	s.minGen = s.poller.Snapshot().Generation
	return day
}

func (s *ScoreboardService) Date() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.date
}

func (s *ScoreboardService) handleUpdate(snap poller.Snapshot[[]game.Game]) {
	s.mu.Lock()
	if snap.Generation < s.minGen {
		s.mu.Unlock()
		return
	}
	s.previous = s.current
	s.current = snap.Data
	previous, current := s.previous, s.current
	listeners := append([]func(previous, current []game.Game){}, s.listeners...)
	s.mu.Unlock()

	if game.HasLiveGames(current) {
		s.poller.SetInterval(s.opts.Intervals.Live)
	} else {
		s.poller.SetInterval(s.opts.Intervals.Idle)
	}

	for _, fn := range listeners {
		fn(previous, current)
	}
}

// OnUpdate registers fn to receive (previous, current) once per successful poll.
func (s *ScoreboardService) OnUpdate(fn func(previous, current []game.Game)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *ScoreboardService) Snapshot() ScoreboardSnapshot {
	snap := s.poller.Snapshot()
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ScoreboardSnapshot{
		Date:          s.date,
		Games:         snap.Data,
		PreviousGames: s.previous,
		HasLiveGames:  game.HasLiveGames(snap.Data),
		HasData:       snap.HasData,
		IsLoading:     snap.IsLoading,
		Err:           snap.Err,
		UpdatedAt:     snap.UpdatedAt,
	}
}

// Load selects date, waits for its first poll and returns the filtered view.
func (s *ScoreboardService) Load(ctx context.Context, date time.Time, filter ScoreboardFilter) (ScoreboardSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreboardService.Load")
	defer span.End()

	s.SetDate(date)
	if err := s.poller.WaitLoaded(ctx); err != nil {
		return ScoreboardSnapshot{}, err
	}
	snap := s.Snapshot()
	snap.Games = s.apply(snap.Games, filter)
	return snap, nil
}

// Filter applies filter to the latest games and orders them for display.
func (s *ScoreboardService) Filter(filter ScoreboardFilter) []game.Game {
	return s.apply(s.poller.Snapshot().Data, filter)
}

func (s *ScoreboardService) apply(games []game.Game, filter ScoreboardFilter) []game.Game {
	isFavorite := func(string) bool { return false }
	if s.prefs != nil {
		favorites := s.prefs.Favorites()
		isFavorite = favorites.Has
	}

	predicates := []game.Predicate{filter.Status.Matches}
	if filter.ConferenceID != "" && s.conferences != nil {
		predicates = append(predicates, func(g game.Game) bool {
			return s.conferences.Matches(g, filter.ConferenceID)
		})
	}
	if filter.FavoritesOnly {
		predicates = append(predicates, func(g game.Game) bool {
			return isFavorite(g.Home.ID) || isFavorite(g.Away.ID)
		})
	}

	return game.SortForDisplay(game.Filter(games, predicates...), isFavorite)
}

// Refetch polls the selected day right away.
func (s *ScoreboardService) Refetch(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreboardService.Refetch")
	defer span.End()
	return s.poller.Refetch(ctx)
}
