package espn

import (
	"github.com/riskibarqy/college-baseball-live/internal/domain/gamedetail"
)

// TransformSummary maps a game summary document.
func TransformSummary(doc any, eventID string) gamedetail.Summary {
	root := asMap(doc)
	out := gamedetail.Summary{EventID: eventID}

	if header := getMap(root, "header"); header != nil {
		competition := firstMap(getSlice(header, "competitions"))
		if competition != nil {
			event := map[string]any{
				"id":           firstNonEmpty(getString(header, "id"), eventID),
				"date":         competition["date"],
				"name":         header["name"],
				"shortName":    header["shortName"],
				"competitions": []any{competition},
			}
			out.Game = transformEvent(event)
			out.HasGame = true
		}
	}

	out.Plays = transformPlays(getSlice(root, "plays"))
	out.BoxScore = transformBoxScore(getMap(root, "boxscore"))
	out.Leaders = transformLeaders(getSlice(root, "leaders"))
	return out
}

// transformPlays accepts both a flat play list and plays grouped per period.
func transformPlays(items []any) []gamedetail.Play {
	out := make([]gamedetail.Play, 0, len(items))
	for _, raw := range items {
		item := asMap(raw)
		if item == nil {
			continue
		}
		nested := getSlice(item, "plays")
		if nested == nil {
			nested = getSlice(item, "items")
		}
		if nested == nil {
			out = append(out, transformPlay(item, periodLabel(getMap(item, "period"))))
			continue
		}
		label := firstNonEmpty(periodLabel(getMap(item, "period")), getString(item, "displayValue"))
		for _, child := range nested {
			if play := asMap(child); play != nil {
				out = append(out, transformPlay(play, label))
			}
		}
	}
	return out
}

func periodLabel(period map[string]any) string {
	return firstNonEmpty(getString(period, "number"), getString(period, "displayValue"))
}

func transformPlay(play map[string]any, period string) gamedetail.Play {
	return gamedetail.Play{
		ID:         getString(play, "id"),
		Text:       firstNonEmpty(getString(play, "text"), getString(play, "description")),
		Period:     period,
		Type:       getString(getMap(play, "type"), "text"),
		AtBatID:    getString(play, "atBatId"),
		AwayScore:  getInt(play, "awayScore"),
		HomeScore:  getInt(play, "homeScore"),
		ScoreValue: getInt(play, "scoreValue"),
	}
}

func transformBoxScore(box map[string]any) []gamedetail.BoxScoreTeam {
	teams := getSlice(box, "teams")
	players := getSlice(box, "players")
	out := make([]gamedetail.BoxScoreTeam, 0, len(teams))
	for idx, raw := range teams {
		entry := asMap(raw)
		if entry == nil {
			continue
		}
		team := getMap(entry, "team")
		item := gamedetail.BoxScoreTeam{
			TeamID:      getString(team, "id"),
			DisplayName: firstNonEmpty(getString(team, "displayName"), "Team"),
			Logo:        logoOf(team),
		}
		for _, s := range getSlice(entry, "statistics") {
			stat := asMap(s)
			if stat == nil {
				continue
			}
			item.Totals = append(item.Totals, gamedetail.Stat{
				Name:         getString(stat, "name"),
				DisplayName:  getString(stat, "displayName"),
				DisplayValue: getString(stat, "displayValue"),
			})
		}

		groups := getSlice(mapAt(players, idx), "statistics")
		item.Batting = playerTable(groups, "batting")
		item.Pitching = playerTable(groups, "pitching")
		out = append(out, item)
	}
	return out
}

func playerTable(groups []any, kind string) *gamedetail.PlayerTable {
	for _, raw := range groups {
		group := asMap(raw)
		if getString(group, "name") != kind && getString(group, "type") != kind {
			continue
		}
		athletes := getSlice(group, "athletes")
		if len(athletes) == 0 {
			return nil
		}
		table := &gamedetail.PlayerTable{Labels: stringList(getSlice(group, "labels"))}
		for _, a := range athletes {
			line := asMap(a)
			athlete := getMap(line, "athlete")
			table.Athletes = append(table.Athletes, gamedetail.AthleteLine{
				ID:    getString(athlete, "id"),
				Name:  firstNonEmpty(getString(athlete, "shortName"), getString(athlete, "displayName")),
				Stats: stringList(getSlice(line, "stats")),
			})
		}
		return table
	}
	return nil
}

func transformLeaders(items []any) []gamedetail.LeaderCategory {
	out := make([]gamedetail.LeaderCategory, 0, len(items))
	for _, raw := range items {
		group := asMap(raw)
		teamID := getString(getMap(group, "team"), "id")
		for _, c := range getSlice(group, "leaders") {
			category := asMap(c)
			if category == nil {
				continue
			}
			item := gamedetail.LeaderCategory{
				TeamID:      teamID,
				Name:        getString(category, "name"),
				DisplayName: getString(category, "displayName"),
			}
			for _, l := range getSlice(category, "leaders") {
				leader := asMap(l)
				item.Leaders = append(item.Leaders, gamedetail.Leader{
					AthleteName:  getString(getMap(leader, "athlete"), "displayName"),
					DisplayValue: getString(leader, "displayValue"),
				})
			}
			out = append(out, item)
		}
	}
	return out
}

func stringList(items []any) []string {
	out := make([]string, 0, len(items))
	for _, raw := range items {
		if s, ok := raw.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
