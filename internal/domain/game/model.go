package game

import (
	"strings"
	"time"
)

// State is the upstream lifecycle of a game.
type State string

const (
	StatePre  State = "pre"
	StateIn   State = "in"
	StatePost State = "post"
)

// ParseState maps upstream text onto the closed state set. Unknown values are pre.
func ParseState(raw string) State {
	switch State(strings.ToLower(strings.TrimSpace(raw))) {
	case StateIn:
		return StateIn
	case StatePost:
		return StatePost
	default:
		return StatePre
	}
}

type HalfInning string

const (
	HalfNone   HalfInning = ""
	HalfTop    HalfInning = "top"
	HalfBottom HalfInning = "bottom"
)

// DetectHalfInning reads the half from human readable status detail such as
// "Top 5th" or "End 7th". The match is a case-insensitive prefix on the
// upstream wording and only applies to live games.
func DetectHalfInning(state State, detail string) HalfInning {
	if state != StateIn || detail == "" {
		return HalfNone
	}
	lower := strings.ToLower(strings.TrimSpace(detail))
	switch {
	case strings.HasPrefix(lower, "top"), strings.HasPrefix(lower, "mid"):
		return HalfTop
	case strings.HasPrefix(lower, "bot"), strings.HasPrefix(lower, "end"):
		return HalfBottom
	default:
		return HalfNone
	}
}

type Status struct {
	State       State
	Detail      string
	ShortDetail string
	Period      int
	Completed   bool
	Inning      int
	HalfInning  HalfInning
}

type Venue struct {
	Name  string
	City  string
	State string
}

// TeamScore is one side of a game.
type TeamScore struct {
	ID           string
	Name         string
	DisplayName  string
	Abbreviation string
	Location     string
	Logo         string
	Color        string
	Score        int
	Hits         int
	Errors       int
	Rank         *int
	Record       string
	Linescores   []int
	IsWinner     bool
	ConferenceID string
}

type Situation struct {
	Balls    int
	Strikes  int
	Outs     int
	OnFirst  bool
	OnSecond bool
	OnThird  bool
	Batter   string
	Pitcher  string
	LastPlay string
}

// Game represents one scheduled or played event.
type Game struct {
	ID               string
	Date             time.Time
	RawDate          string
	Name             string
	ShortName        string
	Status           Status
	Venue            Venue
	Broadcasts       []string
	IsConferenceGame bool
	Away             TeamScore
	Home             TeamScore
	Situation        *Situation
}

func (g Game) IsLive() bool {
	return g.Status.State == StateIn
}

func (g Game) InvolvesTeam(teamID string) bool {
	if teamID == "" {
		return false
	}
	return g.Home.ID == teamID || g.Away.ID == teamID
}

// HasLiveGames reports whether any game in the snapshot is in progress.
func HasLiveGames(games []Game) bool {
	for _, g := range games {
		if g.IsLive() {
			return true
		}
	}
	return false
}
