package standing

import "sort"

// Entry is one team row inside a conference table.
type Entry struct {
	TeamID           string
	DisplayName      string
	Abbreviation     string
	Logo             string
	ConferenceWins   int
	ConferenceLosses int
	ConferenceWinPct float64
	OverallWins      int
	OverallLosses    int
	OverallWinPct    float64
	GamesPlayed      int
	Streak           string
	RunDifferential  string
	RunsScored       int
	RunsAllowed      int
}

type ConferenceStandings struct {
	ConferenceID           string
	ConferenceName         string
	ConferenceAbbreviation string
	Entries                []Entry
}

// SortEntries orders rows by conference win percentage, best first. Ties keep
// upstream order.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ConferenceWinPct > entries[j].ConferenceWinPct
	})
}

// IsEmpty reports whether a standings payload carries no usable rows.
func IsEmpty(items []ConferenceStandings) bool {
	for _, item := range items {
		if len(item.Entries) > 0 {
			return false
		}
	}
	return true
}

func Find(items []ConferenceStandings, conferenceID string) (ConferenceStandings, bool) {
	for _, item := range items {
		if item.ConferenceID == conferenceID {
			return item, true
		}
	}
	return ConferenceStandings{}, false
}
