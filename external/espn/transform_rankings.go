package espn

import "github.com/riskibarqy/college-baseball-live/internal/domain/ranking"

// TransformRankings reads the first poll of a rankings document.
func TransformRankings(doc any) []ranking.RankedTeam {
	poll := firstMap(getSlice(asMap(doc), "rankings"))
	ranks := getSlice(poll, "ranks")
	out := make([]ranking.RankedTeam, 0, len(ranks))
	for _, raw := range ranks {
		entry := asMap(raw)
		if entry == nil {
			continue
		}
		team := getMap(entry, "team")
		current := getInt(entry, "current")

		var previous *int
		prevRank := current
		if p := getInt(entry, "previous"); p != 0 {
			previous = &p
			prevRank = p
		}

		out = append(out, ranking.RankedTeam{
			Rank:            current,
			PreviousRank:    prevRank,
			Trend:           ranking.ComputeTrend(current, previous),
			Points:          getInt(entry, "points"),
			FirstPlaceVotes: getInt(entry, "firstPlaceVotes"),
			TeamID:          getString(team, "id"),
			Name:            firstNonEmpty(getString(team, "name"), getString(team, "nickname")),
			DisplayName:     firstNonEmpty(getString(team, "displayName"), getString(team, "location")),
			Abbreviation:    getString(team, "abbreviation"),
			Logo:            logoOf(team),
			Record:          getString(entry, "recordSummary"),
		})
	}
	return out
}
