package espn

import (
	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/platform/dates"
)

const (
	defaultTeamColor = "#666666"
	unrankedSentinel = 99
)

// TransformScoreboard maps a scoreboard document to games, one per event.
func TransformScoreboard(doc any) []game.Game {
	events := getSlice(asMap(doc), "events")
	out := make([]game.Game, 0, len(events))
	for _, raw := range events {
		event := asMap(raw)
		if event == nil {
			continue
		}
		out = append(out, transformEvent(event))
	}
	return out
}

func transformEvent(event map[string]any) game.Game {
	competition := firstMap(getSlice(event, "competitions"))
	statusDoc := getMap(competition, "status")
	if statusDoc == nil {
		statusDoc = getMap(event, "status")
	}
	status := transformStatus(statusDoc)

	away, home := splitCompetitors(getSlice(competition, "competitors"))
	venue := getMap(competition, "venue")
	address := getMap(venue, "address")

	rawDate := getString(event, "date")
	startsAt, _ := dates.ParseEventTime(rawDate)

	g := game.Game{
		ID:        getString(event, "id"),
		Date:      startsAt,
		RawDate:   rawDate,
		Name:      getString(event, "name"),
		ShortName: getString(event, "shortName"),
		Status:    status,
		Venue: game.Venue{
			Name:  firstNonEmpty(getString(venue, "fullName"), getString(venue, "shortName")),
			City:  getString(address, "city"),
			State: getString(address, "state"),
		},
		Broadcasts:       broadcastNames(getSlice(competition, "broadcasts")),
		IsConferenceGame: getBool(competition, "conferenceCompetition"),
		Away:             extractTeamScore(away),
		Home:             extractTeamScore(home),
	}
	if status.State == game.StateIn {
		g.Situation = extractSituation(getMap(competition, "situation"))
	}
	return g
}

func transformStatus(statusDoc map[string]any) game.Status {
	statusType := getMap(statusDoc, "type")
	state := game.ParseState(getString(statusType, "state"))
	detail := firstNonEmpty(getString(statusType, "detail"), getString(statusType, "shortDetail"))
	period := getInt(statusDoc, "period")

	return game.Status{
		State:       state,
		Detail:      detail,
		ShortDetail: firstNonEmpty(getString(statusType, "shortDetail"), detail),
		Period:      period,
		Completed:   getBool(statusType, "completed"),
		Inning:      period,
		HalfInning:  game.DetectHalfInning(state, detail),
	}
}

// splitCompetitors assigns sides by the homeAway flag. Entries without a role
// fill the remaining side in order, away first.
func splitCompetitors(items []any) (away, home map[string]any) {
	homeIdx, awayIdx := -1, -1
	for i, raw := range items {
		c := asMap(raw)
		switch getString(c, "homeAway") {
		case "home":
			if homeIdx < 0 {
				homeIdx = i
			}
		case "away":
			if awayIdx < 0 {
				awayIdx = i
			}
		}
	}

	nextUnused := func() int {
		for i := range items {
			if i != homeIdx && i != awayIdx && asMap(items[i]) != nil {
				return i
			}
		}
		return -1
	}
	if awayIdx < 0 {
		awayIdx = nextUnused()
	}
	if homeIdx < 0 {
		homeIdx = nextUnused()
	}
	return mapAt(items, awayIdx), mapAt(items, homeIdx)
}

func extractTeamScore(competitor map[string]any) game.TeamScore {
	team := getMap(competitor, "team")
	ts := game.TeamScore{
		ID:           getString(team, "id"),
		Name:         firstNonEmpty(getString(team, "name"), getString(team, "shortDisplayName")),
		DisplayName:  getString(team, "displayName"),
		Abbreviation: getString(team, "abbreviation"),
		Location:     firstNonEmpty(getString(team, "location"), getString(team, "shortDisplayName")),
		Logo:         logoOf(team),
		Color:        colorOf(team, "color", defaultTeamColor),
		Score:        nonNegative(scoreOf(competitor["score"])),
		Hits:         nonNegative(getInt(competitor, "hits")),
		Errors:       nonNegative(getInt(competitor, "errors")),
		Record:       getString(firstMap(getSlice(competitor, "records")), "summary"),
		Linescores:   linescores(getSlice(competitor, "linescores")),
		IsWinner:     getBool(competitor, "winner"),
		ConferenceID: firstNonEmpty(getString(team, "conferenceId"), getString(getMap(team, "groups"), "id")),
	}
	if rank := getInt(getMap(competitor, "curatedRank"), "current"); rank > 0 && rank < unrankedSentinel {
		r := rank
		ts.Rank = &r
	}
	return ts
}

// scoreOf reads a score that is either a plain value or a
// {value, displayValue} object.
func scoreOf(raw any) int {
	if obj := asMap(raw); obj != nil {
		if v, ok := parseNumber(obj["value"]); ok {
			return int(v)
		}
		return asInt(obj["displayValue"])
	}
	return asInt(raw)
}

func linescores(items []any) []int {
	out := make([]int, 0, len(items))
	for _, raw := range items {
		v, ok := parseNumber(asMap(raw)["value"])
		if !ok {
			continue
		}
		out = append(out, int(v))
	}
	return out
}

func broadcastNames(items []any) []string {
	out := make([]string, 0, len(items))
	for _, raw := range items {
		for _, name := range getSlice(asMap(raw), "names") {
			if s, ok := name.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func extractSituation(doc map[string]any) *game.Situation {
	if doc == nil {
		return nil
	}
	return &game.Situation{
		Balls:    getInt(doc, "balls"),
		Strikes:  getInt(doc, "strikes"),
		Outs:     getInt(doc, "outs"),
		OnFirst:  getBool(doc, "onFirst"),
		OnSecond: getBool(doc, "onSecond"),
		OnThird:  getBool(doc, "onThird"),
		Batter:   getString(dig(doc, "batter", "athlete"), "displayName"),
		Pitcher:  getString(dig(doc, "pitcher", "athlete"), "displayName"),
		LastPlay: getString(getMap(doc, "lastPlay"), "text"),
	}
}
