package team

import "strings"

// Team is an entry in the upstream team directory.
type Team struct {
	ID               string
	UID              string
	Slug             string
	Abbreviation     string
	DisplayName      string
	ShortDisplayName string
	Name             string
	Nickname         string
	Location         string
	Color            string
	AlternateColor   string
	Logo             string
	ConferenceID     string
}

// Matches does a case-insensitive substring match over name, location and
// abbreviation. An empty query matches every team.
func (t Team) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{t.DisplayName, t.Name, t.Location, t.Abbreviation, t.ShortDisplayName} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func Search(teams []Team, query string) []Team {
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		if t.Matches(query) {
			out = append(out, t)
		}
	}
	return out
}
