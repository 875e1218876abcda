package espn

import (
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/domain/ranking"
)

func decodeDoc(t *testing.T, raw string) any {
	t.Helper()
	var doc any
	if err := sonic.UnmarshalString(raw, &doc); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return doc
}

const scoreboardFixture = `{
  "events": [
    {
      "id": "401",
      "date": "2025-03-15T18:00Z",
      "name": "Florida Gators at LSU Tigers",
      "shortName": "FLA @ LSU",
      "competitions": [
        {
          "conferenceCompetition": true,
          "status": {"period": 5, "type": {"state": "in", "detail": "Bottom 5th", "shortDetail": "Bot 5th", "completed": false}},
          "venue": {"fullName": "Alex Box Stadium", "address": {"city": "Baton Rouge", "state": "LA"}},
          "broadcasts": [{"names": ["SECN+"]}, {"names": ["ESPN+", "WatchESPN"]}],
          "situation": {"balls": 2, "strikes": 1, "outs": 1, "onFirst": true, "batter": {"athlete": {"displayName": "Tommy White"}}, "lastPlay": {"text": "Single to left"}},
          "competitors": [
            {
              "homeAway": "home",
              "score": "4",
              "hits": 7,
              "errors": 0,
              "winner": false,
              "curatedRank": {"current": 3},
              "records": [{"summary": "15-3"}],
              "linescores": [{"value": 1}, {"value": 0}, {}, {"value": 3}],
              "team": {"id": "99", "name": "Tigers", "displayName": "LSU Tigers", "abbreviation": "LSU", "location": "LSU", "color": "461d7c", "logos": [{"href": "lsu.png"}]}
            },
            {
              "homeAway": "away",
              "score": "-2",
              "curatedRank": {"current": 99},
              "team": {"id": "57", "shortDisplayName": "Florida", "abbreviation": "FLA", "logo": "fla.png"}
            }
          ]
        }
      ]
    },
    {"id": "402", "competitions": [{"competitors": [{"team": {"id": "1"}}, {"team": {"id": "2"}}]}], "status": {"type": {"state": "weird"}}},
    "not-an-object"
  ]
}`

func TestTransformScoreboard(t *testing.T) {
	t.Parallel()

	games := TransformScoreboard(decodeDoc(t, scoreboardFixture))
	if len(games) != 2 {
		t.Fatalf("unexpected game count: got=%d want=2", len(games))
	}

	g := games[0]
	if g.Status.State != game.StateIn || g.Status.HalfInning != game.HalfBottom || g.Status.Inning != 5 {
		t.Fatalf("unexpected status: %+v", g.Status)
	}
	if g.Status.ShortDetail != "Bot 5th" || g.Status.Detail != "Bottom 5th" {
		t.Fatalf("unexpected detail: %+v", g.Status)
	}
	if g.Date.IsZero() || g.RawDate != "2025-03-15T18:00Z" {
		t.Fatalf("unexpected date: %v raw=%s", g.Date, g.RawDate)
	}
	if !g.IsConferenceGame {
		t.Fatalf("expected conference game")
	}
	if got := len(g.Broadcasts); got != 3 || g.Broadcasts[2] != "WatchESPN" {
		t.Fatalf("unexpected broadcasts: %v", g.Broadcasts)
	}
	if g.Venue.Name != "Alex Box Stadium" || g.Venue.City != "Baton Rouge" {
		t.Fatalf("unexpected venue: %+v", g.Venue)
	}

	home := g.Home
	if home.ID != "99" || home.Score != 4 || home.Hits != 7 || home.Color != "#461d7c" || home.Logo != "lsu.png" {
		t.Fatalf("unexpected home: %+v", home)
	}
	if home.Rank == nil || *home.Rank != 3 {
		t.Fatalf("unexpected home rank: %v", home.Rank)
	}
	if len(home.Linescores) != 3 || home.Linescores[2] != 3 {
		t.Fatalf("expected missing inning to be absent, got %v", home.Linescores)
	}
	if home.Record != "15-3" {
		t.Fatalf("unexpected record: %s", home.Record)
	}

	away := g.Away
	if away.Score != 0 {
		t.Fatalf("expected negative score to clamp to 0, got %d", away.Score)
	}
	if away.Rank != nil {
		t.Fatalf("expected unranked sentinel to be dropped")
	}
	if away.Name != "Florida" || away.Location != "Florida" || away.Color != "#666666" {
		t.Fatalf("unexpected away fallbacks: %+v", away)
	}

	if g.Situation == nil || g.Situation.Balls != 2 || !g.Situation.OnFirst || g.Situation.Batter != "Tommy White" || g.Situation.Pitcher != "" {
		t.Fatalf("unexpected situation: %+v", g.Situation)
	}

	fallback := games[1]
	if fallback.Status.State != game.StatePre {
		t.Fatalf("unexpected fallback state: %s", fallback.Status.State)
	}
	if fallback.Away.ID != "1" || fallback.Home.ID != "2" {
		t.Fatalf("unexpected positional fallback: away=%s home=%s", fallback.Away.ID, fallback.Home.ID)
	}
	if fallback.Situation != nil {
		t.Fatalf("expected no situation for scheduled game")
	}
}

func TestSplitCompetitors_OneRoleMissing(t *testing.T) {
	t.Parallel()

	items := []any{
		map[string]any{"id": "a"},
		map[string]any{"id": "b", "homeAway": "away"},
	}
	away, home := splitCompetitors(items)
	if getString(away, "id") != "b" || getString(home, "id") != "a" {
		t.Fatalf("unexpected sides: away=%v home=%v", away, home)
	}

	away, home = splitCompetitors(nil)
	if away != nil || home != nil {
		t.Fatalf("expected empty sides for no competitors")
	}
}

func TestTransformScoreboard_Malformed(t *testing.T) {
	t.Parallel()

	inputs := []any{nil, "text", []any{1, 2}, map[string]any{"events": "nope"}, map[string]any{"events": []any{map[string]any{}}}}
	for _, in := range inputs {
		games := TransformScoreboard(in)
		for _, g := range games {
			if g.Home.Color != "#666666" || g.Status.State != game.StatePre {
				t.Fatalf("unexpected defaults: %+v", g)
			}
		}
	}
}

func TestTransformRankings(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t, `{
	  "rankings": [
	    {"ranks": [
	      {"current": 1, "previous": 2, "points": 750, "firstPlaceVotes": 20, "recordSummary": "20-2", "team": {"id": "99", "nickname": "Tigers", "location": "LSU", "logos": [{"href": "lsu.png"}]}},
	      {"current": 2, "previous": 0, "team": {"id": "57"}},
	      {"current": 3, "previous": 3, "team": {"id": "8"}},
	      {"current": 4, "previous": 1, "team": {"id": "2"}}
	    ]},
	    {"ranks": [{"current": 1, "team": {"id": "ignored"}}]}
	  ]
	}`)

	got := TransformRankings(doc)
	if len(got) != 4 {
		t.Fatalf("unexpected rank count: got=%d want=4", len(got))
	}
	want := []ranking.Trend{ranking.TrendUp, ranking.TrendNew, ranking.TrendSame, ranking.TrendDown}
	for i, w := range want {
		if got[i].Trend != w {
			t.Fatalf("unexpected trend at %d: got=%s want=%s", i, got[i].Trend, w)
		}
	}
	first := got[0]
	if first.Name != "Tigers" || first.DisplayName != "LSU" || first.Logo != "lsu.png" || first.Points != 750 || first.Record != "20-2" {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if got[1].PreviousRank != 2 {
		t.Fatalf("expected missing previous to fall back to current, got %d", got[1].PreviousRank)
	}
}

const standingsFixture = `{
  "children": [
    {
      "name": "NCAA Division I",
      "children": [
        {
          "id": "8",
          "name": "Southeastern Conference",
          "abbreviation": "SEC",
          "standings": {"entries": [
            {"team": {"id": "57", "displayName": "Florida"}, "stats": [
              {"name": "leagueWins", "displayValue": "5"}, {"name": "leagueLosses", "value": 4},
              {"name": "leagueWinPercent", "displayValue": ".556"}, {"name": "wins", "displayValue": "18"},
              {"name": "losses", "displayValue": "6"}, {"name": "streak", "displayValue": "W3"},
              {"name": "pointDifferential", "displayValue": "+41"}
            ]},
            {"team": {"id": "99", "displayName": "LSU"}, "stats": [
              {"name": "wins", "displayValue": "20"}, {"name": "losses", "displayValue": "2"},
              {"name": "leagueWinPercent", "value": 0.9}
            ]}
          ]}
        },
        {"name": "No Id Conference", "shortName": "NIC", "standings": {"entries": [{"team": {"id": "1"}}]}},
        {"id": "1", "name": "Atlantic Coast Conference", "shortName": "ACC", "standings": {"entries": []}}
      ]
    }
  ]
}`

func TestTransformStandings(t *testing.T) {
	t.Parallel()

	got := TransformStandings(decodeDoc(t, standingsFixture))
	if len(got) != 3 {
		t.Fatalf("unexpected conference count: got=%d want=3", len(got))
	}

	sec := got[0]
	if sec.ConferenceName != "Southeastern Conference" || sec.ConferenceAbbreviation != "SEC" {
		t.Fatalf("unexpected conference: %+v", sec)
	}
	if len(sec.Entries) != 2 || sec.Entries[0].TeamID != "99" {
		t.Fatalf("expected entries sorted by conference pct, got %+v", sec.Entries)
	}

	lsu := sec.Entries[0]
	if lsu.ConferenceWins != 20 || lsu.ConferenceLosses != 2 {
		t.Fatalf("expected league stats to fall back to overall, got %d-%d", lsu.ConferenceWins, lsu.ConferenceLosses)
	}
	if lsu.Streak != "0" {
		t.Fatalf("expected missing stat to read 0, got %q", lsu.Streak)
	}

	fla := sec.Entries[1]
	if fla.ConferenceWins != 5 || fla.ConferenceLosses != 4 || fla.OverallWins != 18 {
		t.Fatalf("unexpected florida record: %+v", fla)
	}
	if fla.ConferenceWinPct != 0.556 || fla.RunDifferential != "+41" || fla.Streak != "W3" {
		t.Fatalf("unexpected florida stats: %+v", fla)
	}
}

func TestTransformConferenceMap(t *testing.T) {
	t.Parallel()

	got := TransformConferenceMap(decodeDoc(t, standingsFixture))
	if len(got.Conferences) != 2 {
		t.Fatalf("unexpected conference count: got=%d want=2", len(got.Conferences))
	}
	if got.Conferences[0].Name != "Atlantic Coast Conference" || got.Conferences[0].Abbreviation != "ACC" {
		t.Fatalf("expected conferences sorted by name, got %+v", got.Conferences)
	}
	if id, ok := got.Lookup("57"); !ok || id != "8" {
		t.Fatalf("unexpected lookup: id=%s ok=%v", id, ok)
	}
	if _, ok := got.Lookup("1"); ok {
		t.Fatalf("expected team of id-less conference to be skipped")
	}
}

func TestTransformStandings_EmptyDocument(t *testing.T) {
	t.Parallel()

	if got := TransformStandings(map[string]any{}); len(got) != 0 {
		t.Fatalf("expected empty standings, got %+v", got)
	}
}

func TestSafeInt(t *testing.T) {
	t.Parallel()

	tests := map[string]int{"12": 12, "12-4": 12, "-3": -3, "+41": 41, "": 0, "W3": 0, ".500": 0}
	for in, want := range tests {
		if got := safeInt(in); got != want {
			t.Fatalf("unexpected safeInt(%q): got=%d want=%d", in, got, want)
		}
	}
}
