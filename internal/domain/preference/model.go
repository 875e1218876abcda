package preference

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Storage keys for persisted client state.
const (
	KeyFavorites           = "ncaa-baseball-favorites"
	KeyNotificationPrefs   = "ncaa-baseball-notification-prefs"
	KeyTheme               = "ncaa-baseball-theme"
	KeyStandingsConference = "d1-standings-conference"
)

type NotificationPrefs struct {
	Enabled     bool `json:"enabled"`
	GameStart   bool `json:"gameStart"`
	ScoreChange bool `json:"scoreChange"`
	GameEnd     bool `json:"gameEnd"`
}

func DefaultNotificationPrefs() NotificationPrefs {
	return NotificationPrefs{
		Enabled:     false,
		GameStart:   true,
		ScoreChange: true,
		GameEnd:     true,
	}
}

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	case ThemeSystem:
		return ThemeSystem, nil
	default:
		return "", fmt.Errorf("unknown theme %q", raw)
	}
}

// Favorites is an immutable set of team ids. Mutators return a new value.
type Favorites struct {
	ids map[string]struct{}
}

func NewFavorites(ids ...string) Favorites {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return Favorites{ids: set}
}

func (f Favorites) Has(id string) bool {
	_, ok := f.ids[id]
	return ok
}

func (f Favorites) Len() int {
	return len(f.ids)
}

// IDs returns the set as a sorted slice.
func (f Favorites) IDs() []string {
	out := make([]string, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (f Favorites) With(id string) Favorites {
	return NewFavorites(append(f.IDs(), id)...)
}

func (f Favorites) Without(id string) Favorites {
	next := make([]string, 0, len(f.ids))
	for _, existing := range f.IDs() {
		if existing != id {
			next = append(next, existing)
		}
	}
	return NewFavorites(next...)
}

// Store is a string key/value persistence backend.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
