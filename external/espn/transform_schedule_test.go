package espn

import (
	"testing"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
)

func TestTransformSchedule(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t, `{
	  "team": {"id": "99", "displayName": "LSU Tigers", "abbreviation": "LSU", "logo": "lsu.png"},
	  "season": {"year": 2025},
	  "events": [
	    {"id": "3", "date": "2025-03-20T23:00Z", "competitions": [{
	      "status": {"type": {"state": "pre"}},
	      "competitors": [
	        {"id": "99", "homeAway": "home", "team": {"id": "99"}},
	        {"id": "8", "homeAway": "away", "team": {"id": "8", "displayName": "Arkansas", "abbreviation": "ARK"}}
	      ]}]},
	    {"id": "1", "date": "2025-03-14T23:00Z", "competitions": [{
	      "status": {"type": {"state": "post"}},
	      "competitors": [
	        {"id": "57", "homeAway": "home", "score": {"value": 3, "displayValue": "3"}, "team": {"id": "57", "displayName": "Florida"}},
	        {"id": "99", "homeAway": "away", "winner": true, "score": {"value": 5, "displayValue": "5"}}
	      ]}]},
	    {"id": "2", "date": "2025-03-15T23:00Z", "competitions": [{
	      "status": {"type": {"state": "post"}},
	      "competitors": [
	        {"id": "99", "homeAway": "home", "score": "2"},
	        {"id": "57", "homeAway": "away", "score": "6"}
	      ]}]},
	    {"id": "4", "competitions": [{"competitors": [{"id": "1"}, {"id": "2"}]}]}
	  ]
	}`)

	got := TransformSchedule(doc, "99")
	if got.TeamName != "LSU Tigers" || got.Season != 2025 || got.TeamLogo != "lsu.png" {
		t.Fatalf("unexpected team identity: %+v", got)
	}
	if len(got.Games) != 3 {
		t.Fatalf("unexpected game count: got=%d want=3", len(got.Games))
	}

	wantOrder := []string{"1", "2", "3"}
	for i, id := range wantOrder {
		if got.Games[i].ID != id {
			t.Fatalf("unexpected order at %d: got=%s want=%s", i, got.Games[i].ID, id)
		}
	}

	win := got.Games[0]
	if win.IsHome || win.Opponent.DisplayName != "Florida" || win.IsWin == nil || !*win.IsWin {
		t.Fatalf("unexpected winning game: %+v", win)
	}
	if *win.TeamScore != 5 || *win.OpponentScore != 3 {
		t.Fatalf("unexpected scores: %d-%d", *win.TeamScore, *win.OpponentScore)
	}

	loss := got.Games[1]
	if loss.IsWin == nil || *loss.IsWin {
		t.Fatalf("expected score comparison to mark a loss: %+v", loss)
	}

	upcoming := got.Games[2]
	if upcoming.State != game.StatePre || upcoming.IsWin != nil || upcoming.TeamScore != nil {
		t.Fatalf("unexpected upcoming game: %+v", upcoming)
	}
	if !upcoming.IsHome || upcoming.Opponent.Abbreviation != "ARK" {
		t.Fatalf("unexpected upcoming orientation: %+v", upcoming)
	}
}

func TestTransformSummary(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t, `{
	  "header": {"id": "401", "competitions": [{
	    "date": "2025-03-15T18:00Z",
	    "status": {"period": 9, "type": {"state": "post", "detail": "Final", "completed": true}},
	    "competitors": [
	      {"homeAway": "home", "score": "4", "winner": true, "team": {"id": "99", "location": "LSU"}},
	      {"homeAway": "away", "score": "2", "team": {"id": "57", "location": "Florida"}}
	    ]}]},
	  "plays": [
	    {"period": {"number": 1}, "plays": [{"id": "p1", "text": "Leadoff single"}, {"id": "p2", "description": "Home run", "scoreValue": 2}]},
	    {"id": "p3", "text": "Strikeout", "period": {"number": 2}}
	  ],
	  "boxscore": {
	    "teams": [{"team": {"id": "57", "displayName": "Florida"}, "statistics": [{"name": "hits", "displayName": "Hits", "displayValue": "6"}]}],
	    "players": [{"statistics": [{"name": "batting", "labels": ["AB", "H"], "athletes": [{"athlete": {"id": "a1", "shortName": "J. Doe"}, "stats": ["4", "2"]}]}]}]
	  },
	  "leaders": [{"team": {"id": "57"}, "leaders": [{"name": "avg", "displayName": "Batting Average", "leaders": [{"displayValue": ".412", "athlete": {"displayName": "John Doe"}}]}]}]
	}`)

	got := TransformSummary(doc, "401")
	if !got.HasGame || got.Game.Home.Score != 4 || !got.Game.Home.IsWinner || got.Game.Status.State != game.StatePost {
		t.Fatalf("unexpected header game: %+v", got.Game)
	}
	if len(got.Plays) != 3 || got.Plays[1].Text != "Home run" || !got.Plays[1].IsScoring() || got.Plays[2].Period != "2" {
		t.Fatalf("unexpected plays: %+v", got.Plays)
	}
	if len(got.BoxScore) != 1 || got.BoxScore[0].Batting == nil || got.BoxScore[0].Pitching != nil {
		t.Fatalf("unexpected box score: %+v", got.BoxScore)
	}
	if line := got.BoxScore[0].Batting.Athletes[0]; line.Name != "J. Doe" || len(line.Stats) != 2 {
		t.Fatalf("unexpected batting line: %+v", line)
	}
	if len(got.Leaders) != 1 || got.Leaders[0].Leaders[0].AthleteName != "John Doe" {
		t.Fatalf("unexpected leaders: %+v", got.Leaders)
	}
}
