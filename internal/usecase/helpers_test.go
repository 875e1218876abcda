package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/domain/standing"
	"github.com/riskibarqy/college-baseball-live/internal/platform/poller"
)

type manualTicker struct {
	ch chan time.Time
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               {}

type tickerLog struct {
	mu        sync.Mutex
	intervals []time.Duration
}

func (l *tickerLog) factory(d time.Duration) poller.Ticker {
	l.mu.Lock()
	l.intervals = append(l.intervals, d)
	l.mu.Unlock()
	return &manualTicker{ch: make(chan time.Time)}
}

func (l *tickerLog) last() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.intervals) == 0 {
		return 0
	}
	return l.intervals[len(l.intervals)-1]
}

var testNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

func testOptions(ticks *tickerLog) Options {
	if ticks == nil {
		ticks = &tickerLog{}
	}
	return Options{
		Location:  time.UTC,
		Now:       func() time.Time { return testNow },
		NewTicker: ticks.factory,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

// scriptedScoreboard returns queued responses per date; the last one repeats.
type scriptedScoreboard struct {
	mu        sync.Mutex
	responses map[string][][]game.Game
	calls     map[string]int
}

func newScriptedScoreboard() *scriptedScoreboard {
	return &scriptedScoreboard{responses: map[string][][]game.Game{}, calls: map[string]int{}}
}

func (s *scriptedScoreboard) queue(day time.Time, games ...[]game.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := day.Format("20060102")
	s.responses[key] = append(s.responses[key], games...)
}

func (s *scriptedScoreboard) Scoreboard(_ context.Context, date time.Time) ([]game.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := date.Format("20060102")
	queued := s.responses[key]
	n := s.calls[key]
	s.calls[key] = n + 1
	if len(queued) == 0 {
		return nil, nil
	}
	if n >= len(queued) {
		n = len(queued) - 1
	}
	return queued[n], nil
}

func (s *scriptedScoreboard) callCount(day time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[day.Format("20060102")]
}

type fakeStandings struct {
	mu       sync.Mutex
	bySeason map[int][]standing.ConferenceStandings
	seasons  []int
	confMap  standing.ConferenceMap
}

func (f *fakeStandings) Standings(_ context.Context, season int) ([]standing.ConferenceStandings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seasons = append(f.seasons, season)
	return f.bySeason[season], nil
}

func (f *fakeStandings) ConferenceMap(context.Context) (standing.ConferenceMap, error) {
	if f.confMap.TeamConference == nil {
		return standing.EmptyConferenceMap(), nil
	}
	return f.confMap, nil
}

func (f *fakeStandings) requestedSeasons() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.seasons...)
}

func liveGame(id, homeID, awayID string, home, away int) game.Game {
	return game.Game{
		ID:     id,
		Status: game.Status{State: game.StateIn, ShortDetail: "Top 3rd"},
		Home:   game.TeamScore{ID: homeID, Location: "Home " + homeID, Abbreviation: "H" + homeID, Score: home},
		Away:   game.TeamScore{ID: awayID, Location: "Away " + awayID, Abbreviation: "A" + awayID, Score: away},
	}
}

func gameInState(id, homeID, awayID string, state game.State) game.Game {
	g := liveGame(id, homeID, awayID, 0, 0)
	g.Status.State = state
	return g
}
