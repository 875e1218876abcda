package espn

import (
	"sort"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/domain/schedule"
	"github.com/riskibarqy/college-baseball-live/internal/platform/dates"
)

// TransformSchedule maps a team schedule document, oriented to ownTeamID.
// Events where the team cannot be found among the competitors are skipped.
func TransformSchedule(doc any, ownTeamID string) schedule.TeamSchedule {
	root := asMap(doc)
	teamDoc := getMap(root, "team")
	if ownTeamID == "" {
		ownTeamID = getString(teamDoc, "id")
	}

	season := getInt(getMap(root, "season"), "year")
	if season == 0 {
		season = getInt(getMap(root, "requestedSeason"), "year")
	}

	out := schedule.TeamSchedule{
		TeamID:           ownTeamID,
		TeamName:         firstNonEmpty(getString(teamDoc, "displayName"), getString(teamDoc, "name")),
		TeamAbbreviation: getString(teamDoc, "abbreviation"),
		TeamLogo:         logoOf(teamDoc),
		Season:           season,
	}

	events := getSlice(root, "events")
	out.Games = make([]schedule.Game, 0, len(events))
	for _, raw := range events {
		if g, ok := transformScheduleEvent(asMap(raw), ownTeamID); ok {
			out.Games = append(out.Games, g)
		}
	}
	sort.SliceStable(out.Games, func(i, j int) bool {
		return out.Games[i].Date.Before(out.Games[j].Date)
	})
	return out
}

func transformScheduleEvent(event map[string]any, ownTeamID string) (schedule.Game, bool) {
	if event == nil || ownTeamID == "" {
		return schedule.Game{}, false
	}
	competition := firstMap(getSlice(event, "competitions"))

	var own, opponent map[string]any
	for _, raw := range getSlice(competition, "competitors") {
		c := asMap(raw)
		if c == nil {
			continue
		}
		id := firstNonEmpty(getString(c, "id"), getString(getMap(c, "team"), "id"))
		if id == ownTeamID && own == nil {
			own = c
		} else if opponent == nil {
			opponent = c
		}
	}
	if own == nil {
		return schedule.Game{}, false
	}

	statusDoc := getMap(competition, "status")
	if statusDoc == nil {
		statusDoc = getMap(event, "status")
	}
	state := game.ParseState(getString(getMap(statusDoc, "type"), "state"))

	rawDate := firstNonEmpty(getString(event, "date"), getString(competition, "date"))
	startsAt, _ := dates.ParseEventTime(rawDate)

	opponentTeam := getMap(opponent, "team")
	g := schedule.Game{
		ID:   getString(event, "id"),
		Date: startsAt,
		Opponent: schedule.Opponent{
			ID:           firstNonEmpty(getString(opponent, "id"), getString(opponentTeam, "id")),
			DisplayName:  firstNonEmpty(getString(opponentTeam, "displayName"), getString(opponentTeam, "shortDisplayName")),
			Abbreviation: getString(opponentTeam, "abbreviation"),
			Logo:         logoOf(opponentTeam),
		},
		IsHome:        getString(own, "homeAway") == "home",
		TeamScore:     optionalScore(own["score"]),
		OpponentScore: optionalScore(opponent["score"]),
		State:         state,
	}

	if state == game.StatePost && g.TeamScore != nil && g.OpponentScore != nil {
		var won bool
		if _, flagged := own["winner"].(bool); flagged {
			won = getBool(own, "winner")
		} else {
			won = *g.TeamScore > *g.OpponentScore
		}
		g.IsWin = &won
	}
	return g, true
}

// optionalScore returns nil when the upstream has no score yet.
func optionalScore(raw any) *int {
	if raw == nil {
		return nil
	}
	if obj := asMap(raw); obj != nil {
		if v, ok := parseNumber(obj["value"]); ok {
			n := int(v)
			return &n
		}
		if v, ok := parseNumber(obj["displayValue"]); ok {
			n := int(v)
			return &n
		}
		return nil
	}
	v, ok := parseNumber(raw)
	if !ok {
		return nil
	}
	n := int(v)
	return &n
}
