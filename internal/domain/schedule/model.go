package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
)

type Opponent struct {
	ID           string
	DisplayName  string
	Abbreviation string
	Logo         string
}

// Game is one entry of a team's season schedule, seen from that team's side.
type Game struct {
	ID            string
	Date          time.Time
	Opponent      Opponent
	IsHome        bool
	TeamScore     *int
	OpponentScore *int
	IsWin         *bool
	State         game.State
}

type TeamSchedule struct {
	TeamID           string
	TeamName         string
	TeamAbbreviation string
	TeamLogo         string
	Season           int
	Games            []Game
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterUpcoming  Filter = "upcoming"
)

func ParseFilter(raw string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCompleted:
		return FilterCompleted, nil
	case FilterUpcoming:
		return FilterUpcoming, nil
	default:
		return "", fmt.Errorf("unknown schedule filter %q", raw)
	}
}

func (f Filter) Apply(games []Game) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		switch f {
		case FilterCompleted:
			if g.State != game.StatePost {
				continue
			}
		case FilterUpcoming:
			if g.State != game.StatePre {
				continue
			}
		}
		out = append(out, g)
	}
	return out
}

type Record struct {
	Wins   int
	Losses int
}

// SeasonRecord counts wins and losses over completed games.
func SeasonRecord(games []Game) Record {
	var rec Record
	for _, g := range games {
		if g.State != game.StatePost || g.IsWin == nil {
			continue
		}
		if *g.IsWin {
			rec.Wins++
		} else {
			rec.Losses++
		}
	}
	return rec
}
