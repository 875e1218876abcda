package notification

import (
	"context"
	"fmt"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/domain/preference"
)

type Kind string

const (
	KindGameStart   Kind = "game_start"
	KindScoreChange Kind = "score_change"
	KindGameEnd     Kind = "game_end"
)

// Notification is a single user-facing alert. Key is stable per event so
// repeated detections of the same transition can be suppressed.
type Notification struct {
	Key    string `json:"key"`
	Kind   Kind   `json:"kind"`
	GameID string `json:"gameId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Icon   string `json:"icon,omitempty"`
}

// Notifier delivers notifications to a consumer surface.
type Notifier interface {
	Name() string
	CanNotify() bool
	Send(ctx context.Context, n Notification) error
}

// Detect compares two consecutive snapshots and returns the notifications for
// favorite games, in snapshot order. Kinds switched off in prefs are skipped.
func Detect(prev, curr []game.Game, favorites preference.Favorites, prefs preference.NotificationPrefs) []Notification {
	if len(prev) == 0 || len(curr) == 0 {
		return nil
	}

	previous := make(map[string]game.Game, len(prev))
	for _, g := range prev {
		previous[g.ID] = g
	}

	var out []Notification
	for _, g := range curr {
		if !favorites.Has(g.Home.ID) && !favorites.Has(g.Away.ID) {
			continue
		}
		before, ok := previous[g.ID]
		if !ok {
			continue
		}

		if prefs.GameStart && before.Status.State == game.StatePre && g.Status.State == game.StateIn {
			out = append(out, gameStarted(g))
		}
		if prefs.ScoreChange && g.Status.State == game.StateIn {
			if n, ok := scoreChanged(before, g); ok {
				out = append(out, n)
			}
		}
		if prefs.GameEnd && before.Status.State == game.StateIn && g.Status.State == game.StatePost {
			out = append(out, gameEnded(g))
		}
	}
	return out
}

func gameStarted(g game.Game) Notification {
	icon := g.Home.Logo
	if icon == "" {
		icon = g.Away.Logo
	}
	return Notification{
		Key:    "start-" + g.ID,
		Kind:   KindGameStart,
		GameID: g.ID,
		Title:  "Game Started",
		Body:   fmt.Sprintf("%s vs %s", g.Away.Location, g.Home.Location),
		Icon:   icon,
	}
}

func scoreChanged(before, g game.Game) (Notification, bool) {
	homeScored := g.Home.Score > before.Home.Score
	awayScored := g.Away.Score > before.Away.Score
	if !homeScored && !awayScored {
		return Notification{}, false
	}

	scorer := g.Away
	if homeScored {
		scorer = g.Home
	}
	return Notification{
		Key:    fmt.Sprintf("score-%s-%d-%d", g.ID, g.Home.Score, g.Away.Score),
		Kind:   KindScoreChange,
		GameID: g.ID,
		Title:  scorer.Location + " Scores!",
		Body:   fmt.Sprintf("%s | %s", scoreLine(g), g.Status.ShortDetail),
		Icon:   scorer.Logo,
	}, true
}

func gameEnded(g game.Game) Notification {
	winner := g.Away
	if g.Home.IsWinner {
		winner = g.Home
	}
	return Notification{
		Key:    "end-" + g.ID,
		Kind:   KindGameEnd,
		GameID: g.ID,
		Title:  "Final Score",
		Body:   fmt.Sprintf("%s wins! %s", winner.Location, scoreLine(g)),
		Icon:   winner.Logo,
	}
}

func scoreLine(g game.Game) string {
	return fmt.Sprintf("%s %d - %s %d", g.Away.Abbreviation, g.Away.Score, g.Home.Abbreviation, g.Home.Score)
}
