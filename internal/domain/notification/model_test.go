package notification

import (
	"testing"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/domain/preference"
)

func sampleGame(state game.State, home, away int) game.Game {
	return game.Game{
		ID:     "401",
		Status: game.Status{State: state, ShortDetail: "Bot 3rd"},
		Home: game.TeamScore{
			ID: "99", Location: "LSU", Abbreviation: "LSU", Logo: "lsu.png", Score: home,
		},
		Away: game.TeamScore{
			ID: "57", Location: "Florida", Abbreviation: "FLA", Logo: "fla.png", Score: away,
		},
	}
}

func allPrefs() preference.NotificationPrefs {
	p := preference.DefaultNotificationPrefs()
	p.Enabled = true
	return p
}

func TestDetect_GameStart(t *testing.T) {
	t.Parallel()

	prev := []game.Game{sampleGame(game.StatePre, 0, 0)}
	curr := []game.Game{sampleGame(game.StateIn, 0, 0)}

	got := Detect(prev, curr, preference.NewFavorites("99"), allPrefs())
	if len(got) != 1 {
		t.Fatalf("unexpected notification count: got=%d want=1", len(got))
	}
	n := got[0]
	if n.Key != "start-401" || n.Title != "Game Started" || n.Body != "Florida vs LSU" || n.Icon != "lsu.png" {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestDetect_ScoreChange(t *testing.T) {
	t.Parallel()

	prev := []game.Game{sampleGame(game.StateIn, 2, 1)}
	curr := []game.Game{sampleGame(game.StateIn, 3, 1)}

	got := Detect(prev, curr, preference.NewFavorites("99"), allPrefs())
	if len(got) != 1 {
		t.Fatalf("unexpected notification count: got=%d want=1", len(got))
	}
	n := got[0]
	if n.Key != "score-401-3-1" {
		t.Fatalf("unexpected key: got=%s want=score-401-3-1", n.Key)
	}
	if n.Title != "LSU Scores!" {
		t.Fatalf("unexpected title: got=%s", n.Title)
	}
	if n.Body != "FLA 1 - LSU 3 | Bot 3rd" {
		t.Fatalf("unexpected body: got=%s", n.Body)
	}
}

func TestDetect_GameEnd(t *testing.T) {
	t.Parallel()

	prev := []game.Game{sampleGame(game.StateIn, 3, 4)}
	final := sampleGame(game.StatePost, 3, 4)
	final.Away.IsWinner = true
	curr := []game.Game{final}

	got := Detect(prev, curr, preference.NewFavorites("57"), allPrefs())
	if len(got) != 1 {
		t.Fatalf("unexpected notification count: got=%d want=1", len(got))
	}
	if got[0].Key != "end-401" || got[0].Body != "Florida wins! FLA 4 - LSU 3" || got[0].Icon != "fla.png" {
		t.Fatalf("unexpected notification: %+v", got[0])
	}
}

func TestDetect_Skips(t *testing.T) {
	t.Parallel()

	prev := []game.Game{sampleGame(game.StatePre, 0, 0)}
	curr := []game.Game{sampleGame(game.StateIn, 0, 0)}

	tests := []struct {
		name      string
		prev      []game.Game
		curr      []game.Game
		favorites preference.Favorites
		prefs     preference.NotificationPrefs
	}{
		{name: "empty previous", prev: nil, curr: curr, favorites: preference.NewFavorites("99"), prefs: allPrefs()},
		{name: "empty current", prev: prev, curr: nil, favorites: preference.NewFavorites("99"), prefs: allPrefs()},
		{name: "not a favorite", prev: prev, curr: curr, favorites: preference.NewFavorites("1"), prefs: allPrefs()},
		{name: "kind disabled", prev: prev, curr: curr, favorites: preference.NewFavorites("99"), prefs: preference.NotificationPrefs{Enabled: true}},
		{name: "unknown previous game", prev: []game.Game{{ID: "other"}}, curr: curr, favorites: preference.NewFavorites("99"), prefs: allPrefs()},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Detect(tc.prev, tc.curr, tc.favorites, tc.prefs); len(got) != 0 {
				t.Fatalf("expected no notifications, got=%+v", got)
			}
		})
	}
}
