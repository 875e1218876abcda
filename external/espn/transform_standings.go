package espn

import (
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/college-baseball-live/internal/domain/standing"
)

// conferenceNodes returns the conference subtrees of the Division I node.
func conferenceNodes(doc any) []any {
	division := firstMap(getSlice(asMap(doc), "children"))
	return getSlice(division, "children")
}

// TransformStandings maps each conference table, best conference record
// first.
func TransformStandings(doc any) []standing.ConferenceStandings {
	nodes := conferenceNodes(doc)
	out := make([]standing.ConferenceStandings, 0, len(nodes))
	for _, raw := range nodes {
		conf := asMap(raw)
		if conf == nil {
			continue
		}
		rows := getSlice(getMap(conf, "standings"), "entries")
		entries := make([]standing.Entry, 0, len(rows))
		for _, row := range rows {
			if entry, ok := transformStandingEntry(asMap(row)); ok {
				entries = append(entries, entry)
			}
		}
		standing.SortEntries(entries)

		out = append(out, standing.ConferenceStandings{
			ConferenceID:           getString(conf, "id"),
			ConferenceName:         firstNonEmpty(getString(conf, "name"), getString(conf, "abbreviation")),
			ConferenceAbbreviation: getString(conf, "abbreviation"),
			Entries:                entries,
		})
	}
	return out
}

func transformStandingEntry(row map[string]any) (standing.Entry, bool) {
	if row == nil {
		return standing.Entry{}, false
	}
	team := getMap(row, "team")
	stats := statIndex(getSlice(row, "stats"))

	return standing.Entry{
		TeamID:           getString(team, "id"),
		DisplayName:      firstNonEmpty(getString(team, "displayName"), getString(team, "shortDisplayName")),
		Abbreviation:     getString(team, "abbreviation"),
		Logo:             logoOf(team),
		ConferenceWins:   safeInt(stats.value("leagueWins", "wins")),
		ConferenceLosses: safeInt(stats.value("leagueLosses", "losses")),
		ConferenceWinPct: safeFloat(stats.value("leagueWinPercent")),
		OverallWins:      safeInt(stats.value("wins")),
		OverallLosses:    safeInt(stats.value("losses")),
		OverallWinPct:    safeFloat(stats.value("winPercent")),
		GamesPlayed:      safeInt(stats.value("gamesPlayed")),
		Streak:           stats.value("streak"),
		RunDifferential:  stats.value("pointDifferential"),
		RunsScored:       safeInt(stats.value("pointsFor")),
		RunsAllowed:      safeInt(stats.value("pointsAgainst")),
	}, true
}

type statLookup map[string]map[string]any

func statIndex(items []any) statLookup {
	out := make(statLookup, len(items))
	for _, raw := range items {
		stat := asMap(raw)
		name := getString(stat, "name")
		if name == "" {
			continue
		}
		if _, exists := out[name]; !exists {
			out[name] = stat
		}
	}
	return out
}

// value returns the display text of the first stat present among names,
// falling back to its raw value and then to "0".
func (s statLookup) value(names ...string) string {
	for _, name := range names {
		stat, ok := s[name]
		if !ok {
			continue
		}
		if v := getString(stat, "displayValue"); v != "" {
			return v
		}
		if v := getString(stat, "value"); v != "" {
			return v
		}
		return "0"
	}
	return "0"
}

// safeInt reads the leading integer of a stat, so "12-4" gives 12.
func safeInt(raw string) int {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	end := 0
	for end < len(raw) && (raw[end] >= '0' && raw[end] <= '9' || end == 0 && (raw[end] == '-' || raw[end] == '+')) {
		end++
	}
	v, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0
	}
	return v
}

func safeFloat(raw string) float64 {
	v, ok := parseNumber(raw)
	if !ok {
		return 0
	}
	return v
}

// TransformConferenceMap builds the team to conference lookup from a
// standings document. Conferences without an id are skipped.
func TransformConferenceMap(doc any) standing.ConferenceMap {
	out := standing.EmptyConferenceMap()
	for _, raw := range conferenceNodes(doc) {
		conf := asMap(raw)
		id := getString(conf, "id")
		if id == "" {
			continue
		}
		out.Conferences = append(out.Conferences, standing.Conference{
			ID:           id,
			Name:         firstNonEmpty(getString(conf, "name"), getString(conf, "abbreviation")),
			Abbreviation: firstNonEmpty(getString(conf, "abbreviation"), getString(conf, "shortName"), getString(conf, "name")),
		})
		for _, row := range getSlice(getMap(conf, "standings"), "entries") {
			if teamID := getString(getMap(asMap(row), "team"), "id"); teamID != "" {
				out.TeamConference[teamID] = id
			}
		}
	}
	sort.SliceStable(out.Conferences, func(i, j int) bool {
		return strings.ToLower(out.Conferences[i].Name) < strings.ToLower(out.Conferences[j].Name)
	})
	return out
}
