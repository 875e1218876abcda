package standing

// Conference is a lookup entity built from standings data.
type Conference struct {
	ID           string
	Name         string
	Abbreviation string
}

// ConferenceMap resolves team ids to conference ids. The scoreboard endpoint
// ignores conference filters for this sport, so filtering happens locally.
type ConferenceMap struct {
	TeamConference map[string]string
	Conferences    []Conference
}

func EmptyConferenceMap() ConferenceMap {
	return ConferenceMap{TeamConference: map[string]string{}}
}

func (m ConferenceMap) Lookup(teamID string) (string, bool) {
	if m.TeamConference == nil || teamID == "" {
		return "", false
	}
	id, ok := m.TeamConference[teamID]
	return id, ok
}

// InConference reports whether any of the given teams belongs to conferenceID.
// An empty conferenceID matches everything.
func (m ConferenceMap) InConference(conferenceID string, teamIDs ...string) bool {
	if conferenceID == "" {
		return true
	}
	for _, teamID := range teamIDs {
		if id, ok := m.Lookup(teamID); ok && id == conferenceID {
			return true
		}
	}
	return false
}
