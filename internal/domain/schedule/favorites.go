package schedule

import (
	"sort"
	"strings"
	"time"
)

// TeamRef identifies the favorite team a schedule entry was fetched for.
type TeamRef struct {
	ID           string
	Name         string
	Abbreviation string
	Logo         string
}

type FavoriteGame struct {
	Game
	Team TeamRef
}

type DateGroup struct {
	DateKey   string
	DateLabel string
	IsToday   bool
	Games     []FavoriteGame
}

const (
	dayKeyLayout   = "2006-01-02"
	dayLabelLayout = "Mon, Jan 2"
	lookAheadDays  = 8
)

// IDsKey canonicalizes a favorite set so unchanged sets can be detected.
func IDsKey(ids []string) string {
	sorted := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			sorted = append(sorted, id)
		}
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// Flatten attaches the owning team to each game of each schedule.
func Flatten(schedules []TeamSchedule) []FavoriteGame {
	out := make([]FavoriteGame, 0, 64)
	for _, s := range schedules {
		ref := TeamRef{
			ID:           s.TeamID,
			Name:         s.TeamName,
			Abbreviation: s.TeamAbbreviation,
			Logo:         s.TeamLogo,
		}
		for _, g := range s.Games {
			out = append(out, FavoriteGame{Game: g, Team: ref})
		}
	}
	return out
}

// Dedupe collapses games that show up once per favorited participant. The
// first occurrence of an event id wins.
func Dedupe(games []FavoriteGame) []FavoriteGame {
	seen := make(map[string]struct{}, len(games))
	out := make([]FavoriteGame, 0, len(games))
	for _, g := range games {
		if g.ID != "" {
			if _, ok := seen[g.ID]; ok {
				continue
			}
			seen[g.ID] = struct{}{}
		}
		out = append(out, g)
	}
	return out
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// GroupByDay sorts games by start time and buckets them per local calendar day,
// from yesterday through seven days ahead of now.
func GroupByDay(games []FavoriteGame, now time.Time, loc *time.Location) []DateGroup {
	if loc == nil {
		loc = time.Local
	}

	sorted := append([]FavoriteGame(nil), games...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	today := startOfDay(now, loc)
	yesterday := today.AddDate(0, 0, -1)
	cutoff := today.AddDate(0, 0, lookAheadDays)

	byKey := make(map[string]*DateGroup)
	keys := make([]string, 0, lookAheadDays+1)
	for _, g := range sorted {
		if g.Date.Before(yesterday) || !g.Date.Before(cutoff) {
			continue
		}
		day := startOfDay(g.Date, loc)
		key := day.Format(dayKeyLayout)
		group, ok := byKey[key]
		if !ok {
			group = &DateGroup{
				DateKey:   key,
				DateLabel: dayLabel(day, today, yesterday),
				IsToday:   day.Equal(today),
			}
			byKey[key] = group
			keys = append(keys, key)
		}
		group.Games = append(group.Games, g)
	}

	sort.Strings(keys)
	out := make([]DateGroup, 0, len(keys))
	for _, key := range keys {
		out = append(out, *byKey[key])
	}
	return out
}

func dayLabel(day, today, yesterday time.Time) string {
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(yesterday):
		return "Yesterday"
	default:
		return day.Format(dayLabelLayout)
	}
}
