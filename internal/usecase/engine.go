package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/notification"
	"github.com/riskibarqy/college-baseball-live/internal/domain/preference"
	"github.com/riskibarqy/college-baseball-live/internal/platform/poller"
)

// managedPoller is the lifecycle surface shared by every typed poller.
type managedPoller interface {
	Name() string
	Start(ctx context.Context)
	Stop()
	SetVisible(visible bool)
	State() poller.State
	Status() poller.Status
}

// Sources groups the upstream adapters the engine reads from.
type Sources struct {
	Scoreboard  ScoreboardSource
	Rankings    RankingsSource
	Standings   StandingsSource
	Teams       TeamsSource
	Schedules   ScheduleSource
	Summaries   SummarySource
	Leaderboard LeaderboardSource
}

type EngineConfig struct {
	Sources                 Sources
	Store                   preference.Store
	Notifier                notification.Notifier
	FavoriteScheduleWorkers int
	CacheTTL                time.Duration
	Options                 Options
}

// Engine owns every derived service and the pollers behind them.
type Engine struct {
	Preferences       *PreferenceService
	Conferences       *TeamConferenceService
	Scoreboard        *ScoreboardService
	Rankings          *RankingsService
	Standings         *StandingsService
	Stats             *StatsService
	GameDetail        *GameDetailService
	TeamSchedules     *TeamScheduleService
	TeamDirectory     *TeamDirectoryService
	FavoriteSchedules *FavoriteSchedulesService
	Notifications     *NotificationService

	opts    Options
	pollers []managedPoller

	mu      sync.Mutex
	visible bool
	started bool
}

func NewEngine(cfg EngineConfig) *Engine {
	opts := cfg.Options.normalize()

	prefs := NewPreferenceService(cfg.Store, opts.Logger)
	conferences := NewTeamConferenceService(cfg.Sources.Standings, opts)
	scoreboard := NewScoreboardService(cfg.Sources.Scoreboard, conferences, prefs, opts)
	rankings := NewRankingsService(cfg.Sources.Rankings, opts)
	standings := NewStandingsService(cfg.Sources.Standings, prefs, opts)
	statsSvc := NewStatsService(cfg.Sources.Leaderboard, opts)
	detail := NewGameDetailService(cfg.Sources.Summaries, opts)

	e := &Engine{
		Preferences:       prefs,
		Conferences:       conferences,
		Scoreboard:        scoreboard,
		Rankings:          rankings,
		Standings:         standings,
		Stats:             statsSvc,
		GameDetail:        detail,
		TeamSchedules:     NewTeamScheduleService(cfg.Sources.Schedules, cfg.CacheTTL),
		TeamDirectory:     NewTeamDirectoryService(cfg.Sources.Teams, cfg.CacheTTL),
		FavoriteSchedules: NewFavoriteSchedulesService(cfg.Sources.Schedules, cfg.FavoriteScheduleWorkers, opts),
		Notifications:     NewNotificationService(prefs, cfg.Notifier, opts.Logger),
		opts:              opts,
		visible:           true,
		pollers: []managedPoller{
			conferences.Poller(),
			scoreboard.Poller(),
			rankings.Poller(),
			standings.Poller(),
			statsSvc.Poller(),
			detail.Poller(),
		},
	}
	e.Notifications.Subscribe(scoreboard)
	prefs.OnFavoritesChanged(func(preference.Favorites) {
		e.FavoriteSchedules.Invalidate()
	})
	return e
}

// Start loads stored preferences and activates every poller. A preference
// read failure is logged and the defaults stay in place.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return
	}
	e.started = true
	e.mu.Unlock()

	if err := e.Preferences.Load(ctx); err != nil {
		e.opts.Logger.WarnContext(ctx, "load preferences failed, using defaults", "error", err)
	}
	for _, p := range e.pollers {
		p.Start(ctx)
	}
	e.opts.Logger.InfoContext(ctx, "sync engine started", "pollers", len(e.pollers))
}

// Run starts the engine and blocks until ctx ends, then stops it.
func (e *Engine) Run(ctx context.Context) error {
	e.Start(ctx)
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	e.Stop(shutdownCtx)
	return nil
}

// Stop tears down every poller and waits for pending writes and deliveries.
func (e *Engine) Stop(ctx context.Context) {
	for _, p := range e.pollers {
		p.Stop()
	}
	if err := e.Preferences.Flush(ctx); err != nil {
		e.opts.Logger.WarnContext(ctx, "flush preferences timed out", "error", err)
	}
	if err := e.Notifications.Wait(ctx); err != nil {
		e.opts.Logger.WarnContext(ctx, "pending notifications timed out", "error", err)
	}
}

// SetVisible suspends or resumes every poller. Resuming refetches right away.
func (e *Engine) SetVisible(visible bool) {
	e.mu.Lock()
	e.visible = visible
	e.mu.Unlock()
	for _, p := range e.pollers {
		p.SetVisible(visible)
	}
}

func (e *Engine) Visible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible
}

type PollerStatus struct {
	Name   string
	State  poller.State
	Status poller.Status
}

// Status reports every poller, sorted by name.
func (e *Engine) Status() []PollerStatus {
	out := make([]PollerStatus, 0, len(e.pollers))
	for _, p := range e.pollers {
		out = append(out, PollerStatus{Name: p.Name(), State: p.State(), Status: p.Status()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
