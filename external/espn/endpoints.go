package espn

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultBaseURL          = "https://site.api.espn.com/apis/site/v2/sports/baseball/college-baseball"
	DefaultStandingsBaseURL = "https://site.api.espn.com/apis/v2/sports/baseball/college-baseball"

	scoreboardLimit = 200
	teamsLimit      = 400
)

// Endpoints builds upstream URLs. The scoreboard takes no conference group;
// the upstream ignores it for this sport and filtering happens locally.
type Endpoints struct {
	base          string
	standingsBase string
}

func NewEndpoints(base, standingsBase string) Endpoints {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	standingsBase = strings.TrimRight(strings.TrimSpace(standingsBase), "/")
	if standingsBase == "" {
		standingsBase = DefaultStandingsBaseURL
	}
	return Endpoints{base: base, standingsBase: standingsBase}
}

// Scoreboard takes the day as YYYYMMDD.
func (e Endpoints) Scoreboard(day string) string {
	q := url.Values{}
	q.Set("dates", day)
	q.Set("limit", strconv.Itoa(scoreboardLimit))
	return e.base + "/scoreboard?" + q.Encode()
}

func (e Endpoints) Rankings() string {
	return e.base + "/rankings"
}

func (e Endpoints) Teams() string {
	return e.base + "/teams?limit=" + strconv.Itoa(teamsLimit)
}

func (e Endpoints) Summary(eventID string) string {
	return e.base + "/summary?event=" + url.QueryEscape(eventID)
}

func (e Endpoints) TeamSchedule(teamID string) string {
	return e.base + "/teams/" + url.PathEscape(teamID) + "/schedule"
}

// Standings returns the current season table when season is 0.
func (e Endpoints) Standings(season int) string {
	if season <= 0 {
		return e.standingsBase + "/standings"
	}
	return e.standingsBase + "/standings?season=" + strconv.Itoa(season)
}
