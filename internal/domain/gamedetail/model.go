package gamedetail

import "github.com/riskibarqy/college-baseball-live/internal/domain/game"

// MaxRecentPlays bounds the play-by-play feed returned to consumers.
const MaxRecentPlays = 50

type Play struct {
	ID         string
	Text       string
	Period     string
	Type       string
	AtBatID    string
	AwayScore  int
	HomeScore  int
	ScoreValue int
}

func (p Play) IsScoring() bool {
	return p.ScoreValue > 0
}

type Stat struct {
	Name         string
	DisplayName  string
	DisplayValue string
}

type AthleteLine struct {
	ID    string
	Name  string
	Stats []string
}

type PlayerTable struct {
	Labels   []string
	Athletes []AthleteLine
}

type BoxScoreTeam struct {
	TeamID      string
	DisplayName string
	Logo        string
	Totals      []Stat
	Batting     *PlayerTable
	Pitching    *PlayerTable
}

type Leader struct {
	AthleteName  string
	DisplayValue string
}

type LeaderCategory struct {
	TeamID      string
	Name        string
	DisplayName string
	Leaders     []Leader
}

// Summary is the detail view of a single game.
type Summary struct {
	EventID  string
	Game     game.Game
	HasGame  bool
	BoxScore []BoxScoreTeam
	Plays    []Play
	Leaders  []LeaderCategory
}

// RecentPlays returns up to n plays, newest first.
func RecentPlays(plays []Play, n int) []Play {
	if n <= 0 {
		n = MaxRecentPlays
	}
	size := len(plays)
	if size > n {
		size = n
	}
	out := make([]Play, 0, size)
	for i := len(plays) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, plays[i])
	}
	return out
}
