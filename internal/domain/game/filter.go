package game

import (
	"fmt"
	"sort"
	"strings"
)

type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterLive      StatusFilter = "live"
	FilterFinal     StatusFilter = "final"
	FilterScheduled StatusFilter = "scheduled"
)

func ParseStatusFilter(raw string) (StatusFilter, error) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterLive:
		return FilterLive, nil
	case FilterFinal:
		return FilterFinal, nil
	case FilterScheduled:
		return FilterScheduled, nil
	default:
		return "", fmt.Errorf("unknown status filter %q", raw)
	}
}

func (f StatusFilter) Matches(g Game) bool {
	switch f {
	case FilterLive:
		return g.Status.State == StateIn
	case FilterFinal:
		return g.Status.State == StatePost
	case FilterScheduled:
		return g.Status.State == StatePre
	default:
		return true
	}
}

// Predicate decides whether a game stays in a filtered list.
type Predicate func(Game) bool

// Filter keeps the games accepted by every predicate. Nil predicates are skipped.
func Filter(games []Game, predicates ...Predicate) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		keep := true
		for _, p := range predicates {
			if p != nil && !p(g) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, g)
		}
	}
	return out
}

func stateOrder(s State) int {
	switch s {
	case StateIn:
		return 0
	case StatePre:
		return 1
	default:
		return 2
	}
}

// SortForDisplay orders live games first, then scheduled, then final. Inside a
// state group games involving a favorite come first. The input slice is not
// modified.
func SortForDisplay(games []Game, isFavorite func(teamID string) bool) []Game {
	out := append([]Game(nil), games...)
	fav := func(g Game) bool {
		if isFavorite == nil {
			return false
		}
		return isFavorite(g.Home.ID) || isFavorite(g.Away.ID)
	}
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := stateOrder(out[i].Status.State), stateOrder(out[j].Status.State)
		if oi != oj {
			return oi < oj
		}
		return fav(out[i]) && !fav(out[j])
	})
	return out
}
