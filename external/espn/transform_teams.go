package espn

import "github.com/riskibarqy/college-baseball-live/internal/domain/team"

const defaultDirectoryColor = "#666"

// TransformTeams flattens the league team directory.
func TransformTeams(doc any) []team.Team {
	league := firstMap(getSlice(firstMap(getSlice(asMap(doc), "sports")), "leagues"))
	items := getSlice(league, "teams")
	out := make([]team.Team, 0, len(items))
	for _, raw := range items {
		wrapper := asMap(raw)
		if wrapper == nil {
			continue
		}
		t := getMap(wrapper, "team")
		if t == nil {
			t = wrapper
		}
		out = append(out, team.Team{
			ID:               getString(t, "id"),
			UID:              getString(t, "uid"),
			Slug:             getString(t, "slug"),
			Abbreviation:     getString(t, "abbreviation"),
			DisplayName:      getString(t, "displayName"),
			ShortDisplayName: getString(t, "shortDisplayName"),
			Name:             firstNonEmpty(getString(t, "name"), getString(t, "nickname")),
			Nickname:         getString(t, "nickname"),
			Location:         getString(t, "location"),
			Color:            colorOf(t, "color", defaultDirectoryColor),
			AlternateColor:   colorOf(t, "alternateColor", ""),
			Logo:             getString(firstMap(getSlice(t, "logos")), "href"),
			ConferenceID:     getString(getMap(t, "groups"), "id"),
		})
	}
	return out
}
