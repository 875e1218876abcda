package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/infrastructure/kvstore"
)

func TestScoreboardService_SwapsSnapshotsAndAdaptsInterval(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	source := newScriptedScoreboard()
	source.queue(today,
		[]game.Game{gameInState("g1", "1", "2", game.StatePre)},
		[]game.Game{liveGame("g1", "1", "2", 1, 0)},
	)

	ticks := &tickerLog{}
	opts := testOptions(ticks)
	svc := NewScoreboardService(source, nil, nil, opts)

	updates := make(chan [2][]game.Game, 4)
	svc.OnUpdate(func(previous, current []game.Game) {
		updates <- [2][]game.Game{previous, current}
	})

	svc.Poller().Start(ctx)
	if err := svc.Poller().WaitLoaded(ctx); err != nil {
		t.Fatalf("wait loaded: %v", err)
	}
	first := <-updates
	if first[0] != nil || len(first[1]) != 1 {
		t.Fatalf("unexpected first update: prev=%v curr=%v", first[0], first[1])
	}
	if got := svc.Poller().Interval(); got != DefaultIntervals().Idle {
		t.Fatalf("unexpected interval: got=%v want=%v", got, DefaultIntervals().Idle)
	}

	if err := svc.Refetch(ctx); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	second := <-updates
	if len(second[0]) != 1 || second[0][0].Status.State != game.StatePre {
		t.Fatalf("unexpected previous games: %+v", second[0])
	}
	if second[1][0].Status.State != game.StateIn {
		t.Fatalf("unexpected current state: got=%s want=%s", second[1][0].Status.State, game.StateIn)
	}

	waitFor(t, func() bool { return ticks.last() == DefaultIntervals().Live })
	snap := svc.Snapshot()
	if !snap.HasLiveGames || !snap.HasData {
		t.Fatalf("unexpected snapshot flags: live=%v data=%v", snap.HasLiveGames, snap.HasData)
	}
	if len(snap.PreviousGames) != 1 {
		t.Fatalf("unexpected previous count: got=%d want=1", len(snap.PreviousGames))
	}
}

func TestScoreboardService_SetDateResetsPrevious(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	source := newScriptedScoreboard()
	source.queue(today, []game.Game{gameInState("g1", "1", "2", game.StatePost)})
	source.queue(tomorrow, []game.Game{gameInState("g2", "3", "4", game.StatePre)})

	svc := NewScoreboardService(source, nil, nil, testOptions(nil))
	svc.Poller().Start(ctx)
	if err := svc.Refetch(ctx); err != nil {
		t.Fatalf("refetch: %v", err)
	}

	snap, err := svc.Load(ctx, tomorrow.Add(13*time.Hour), ScoreboardFilter{})
	if err != nil {
		t.Fatalf("load tomorrow: %v", err)
	}
	if !snap.Date.Equal(tomorrow) {
		t.Fatalf("unexpected date: got=%v want=%v", snap.Date, tomorrow)
	}
	if snap.PreviousGames != nil {
		t.Fatalf("expected previous games to reset, got %+v", snap.PreviousGames)
	}
	if len(snap.Games) != 1 || snap.Games[0].ID != "g2" {
		t.Fatalf("unexpected games: %+v", snap.Games)
	}
	if got := source.callCount(tomorrow); got != 1 {
		t.Fatalf("unexpected fetch count: got=%d want=1", got)
	}

	// Same day again does not re-key.
	svc.SetDate(tomorrow.Add(2 * time.Hour))
	if got := svc.Poller().Key(); got != "20260315" {
		t.Fatalf("unexpected key: got=%s want=20260315", got)
	}
}

func TestScoreboardService_FilterOrdersFavoritesFirst(t *testing.T) {
	t.Parallel()

	prefs := NewPreferenceService(kvstore.NewMemoryStore(), nil)
	if _, err := prefs.AddFavorite(context.Background(), "9"); err != nil {
		t.Fatalf("add favorite: %v", err)
	}

	svc := NewScoreboardService(newScriptedScoreboard(), nil, prefs, testOptions(nil))
	games := []game.Game{
		gameInState("final", "1", "2", game.StatePost),
		gameInState("pre", "3", "4", game.StatePre),
		gameInState("live", "5", "6", game.StateIn),
		gameInState("live-fav", "7", "9", game.StateIn),
	}

	tests := []struct {
		name   string
		filter ScoreboardFilter
		want   []string
	}{
		{name: "all", filter: ScoreboardFilter{Status: game.FilterAll}, want: []string{"live-fav", "live", "pre", "final"}},
		{name: "live", filter: ScoreboardFilter{Status: game.FilterLive}, want: []string{"live-fav", "live"}},
		{name: "scheduled", filter: ScoreboardFilter{Status: game.FilterScheduled}, want: []string{"pre"}},
		{name: "favorites only", filter: ScoreboardFilter{FavoritesOnly: true}, want: []string{"live-fav"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := svc.apply(games, tc.filter)
			if len(got) != len(tc.want) {
				t.Fatalf("unexpected count: got=%d want=%d", len(got), len(tc.want))
			}
			for i, g := range got {
				if g.ID != tc.want[i] {
					t.Fatalf("unexpected order at %d: got=%s want=%s", i, g.ID, tc.want[i])
				}
			}
		})
	}
}

func TestScoreboardService_ConferenceFilterFallsBackToRow(t *testing.T) {
	t.Parallel()

	conferences := NewTeamConferenceService(&fakeStandings{}, testOptions(nil))
	svc := NewScoreboardService(newScriptedScoreboard(), conferences, nil, testOptions(nil))

	inConf := gameInState("a", "1", "2", game.StatePre)
	inConf.Home.ConferenceID = "8"
	outConf := gameInState("b", "3", "4", game.StatePre)

	got := svc.apply([]game.Game{inConf, outConf}, ScoreboardFilter{ConferenceID: "8"})
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("unexpected filtered games: %+v", got)
	}
}

func TestScoreboardService_IntervalFallsBackToIdleAfterLive(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	source := newScriptedScoreboard()
	source.queue(today,
		[]game.Game{liveGame("g1", "1", "2", 2, 1)},
		[]game.Game{gameInState("g1", "1", "2", game.StatePost)},
	)

	ticks := &tickerLog{}
	svc := NewScoreboardService(source, nil, nil, testOptions(ticks))
	svc.Poller().Start(ctx)
	if err := svc.Poller().WaitLoaded(ctx); err != nil {
		t.Fatalf("wait loaded: %v", err)
	}
	waitFor(t, func() bool { return svc.Poller().Interval() == DefaultIntervals().Live })
	if got := ticks.last(); got != DefaultIntervals().Live {
		t.Fatalf("unexpected ticker interval: got=%v want=%v", got, DefaultIntervals().Live)
	}

	if err := svc.Refetch(ctx); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	waitFor(t, func() bool { return svc.Poller().Interval() == DefaultIntervals().Idle })
	if got := ticks.last(); got != DefaultIntervals().Idle {
		t.Fatalf("unexpected ticker interval: got=%v want=%v", got, DefaultIntervals().Idle)
	}
	if svc.Snapshot().HasLiveGames {
		t.Fatalf("expected no live games after the final poll")
	}
}
