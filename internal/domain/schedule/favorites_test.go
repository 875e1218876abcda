package schedule

import (
	"testing"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
)

func TestIDsKey_IgnoresOrderAndBlanks(t *testing.T) {
	t.Parallel()

	a := IDsKey([]string{"99", "8", " "})
	b := IDsKey([]string{"8", "99"})
	if a != b {
		t.Fatalf("unexpected keys: got=%q want=%q", a, b)
	}
	if a != "8,99" {
		t.Fatalf("unexpected key: %q", a)
	}
}

func TestDedupe_TwoFavoritesPlayingEachOther(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	schedules := []TeamSchedule{
		{TeamID: "1", Games: []Game{{ID: "evt-1", Date: date, State: game.StatePre}}},
		{TeamID: "2", Games: []Game{{ID: "evt-1", Date: date, State: game.StatePre}}},
	}

	got := Dedupe(Flatten(schedules))
	if len(got) != 1 {
		t.Fatalf("unexpected game count: got=%d want=1", len(got))
	}
	if got[0].Team.ID != "1" {
		t.Fatalf("expected first occurrence to win, got team=%s", got[0].Team.ID)
	}
}

func TestGroupByDay_WindowAndLabels(t *testing.T) {
	t.Parallel()

	loc := time.UTC
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, loc)
	games := []FavoriteGame{
		{Game: Game{ID: "future", Date: time.Date(2024, 3, 18, 17, 0, 0, 0, loc)}},
		{Game: Game{ID: "today-late", Date: time.Date(2024, 3, 15, 23, 0, 0, 0, loc)}},
		{Game: Game{ID: "yesterday", Date: time.Date(2024, 3, 14, 1, 0, 0, 0, loc)}},
		{Game: Game{ID: "today-early", Date: time.Date(2024, 3, 15, 9, 0, 0, 0, loc)}},
		{Game: Game{ID: "too-old", Date: time.Date(2024, 3, 13, 23, 59, 0, 0, loc)}},
		{Game: Game{ID: "too-far", Date: time.Date(2024, 3, 23, 0, 0, 0, 0, loc)}},
		{Game: Game{ID: "last-day", Date: time.Date(2024, 3, 22, 23, 0, 0, 0, loc)}},
	}

	groups := GroupByDay(games, now, loc)
	if len(groups) != 4 {
		t.Fatalf("unexpected group count: got=%d want=4", len(groups))
	}

	wantKeys := []string{"2024-03-14", "2024-03-15", "2024-03-18", "2024-03-22"}
	wantLabels := []string{"Yesterday", "Today", "Mon, Mar 18", "Fri, Mar 22"}
	for i, g := range groups {
		if g.DateKey != wantKeys[i] {
			t.Fatalf("unexpected key at %d: got=%s want=%s", i, g.DateKey, wantKeys[i])
		}
		if g.DateLabel != wantLabels[i] {
			t.Fatalf("unexpected label at %d: got=%s want=%s", i, g.DateLabel, wantLabels[i])
		}
	}
	if !groups[1].IsToday {
		t.Fatalf("expected today group to be flagged")
	}
	if len(groups[1].Games) != 2 || groups[1].Games[0].ID != "today-early" {
		t.Fatalf("expected today games sorted by start time, got %+v", groups[1].Games)
	}
}

func TestSeasonRecord_CountsCompletedOnly(t *testing.T) {
	t.Parallel()

	win, loss := true, false
	games := []Game{
		{State: game.StatePost, IsWin: &win},
		{State: game.StatePost, IsWin: &loss},
		{State: game.StatePost, IsWin: &win},
		{State: game.StatePre},
		{State: game.StatePost},
	}

	rec := SeasonRecord(games)
	if rec.Wins != 2 || rec.Losses != 1 {
		t.Fatalf("unexpected record: got=%d-%d want=2-1", rec.Wins, rec.Losses)
	}

	if got := FilterUpcoming.Apply(games); len(got) != 1 {
		t.Fatalf("unexpected upcoming count: got=%d want=1", len(got))
	}
	if got := FilterCompleted.Apply(games); len(got) != 4 {
		t.Fatalf("unexpected completed count: got=%d want=4", len(got))
	}
}
