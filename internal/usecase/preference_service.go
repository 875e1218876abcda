package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/college-baseball-live/internal/domain/preference"
	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
)

const persistTimeout = 5 * time.Second

// PreferenceService owns the favorites set, notification preferences, theme
// and remembered standings conference. Reads never touch the store. Every
// mutation swaps in a complete new value and persists it in the background;
// persistence failures are logged and never surface to the caller.
type PreferenceService struct {
	store  preference.Store
	logger *logging.Logger

	// mu serializes read-modify-write mutations. Readers use the atomics.
	mu                  sync.Mutex
	favorites           atomic.Pointer[preference.Favorites]
	notificationPrefs   atomic.Pointer[preference.NotificationPrefs]
	theme               atomic.Pointer[preference.Theme]
	standingsConference atomic.Pointer[string]

	persistMu sync.Mutex
	pending   sync.WaitGroup

	listenersMu sync.RWMutex
	listeners   []func(preference.Favorites)
}

func NewPreferenceService(store preference.Store, logger *logging.Logger) *PreferenceService {
	s := &PreferenceService{
		store:  store,
		logger: logging.OrDefault(logger).Named("preferences"),
	}
	favorites := preference.NewFavorites()
	prefs := preference.DefaultNotificationPrefs()
	theme := preference.ThemeSystem
	conference := ""
	s.favorites.Store(&favorites)
	s.notificationPrefs.Store(&prefs)
	s.theme.Store(&theme)
	s.standingsConference.Store(&conference)
	return s
}

// Load reads every value from the store. Missing or unreadable values keep
// their defaults; only store failures are returned.
func (s *PreferenceService) Load(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.Load")
	defer span.End()

	var ids []string
	if ok, err := s.readJSON(ctx, preference.KeyFavorites, &ids); err != nil {
		return err
	} else if ok {
		favorites := preference.NewFavorites(ids...)
		s.favorites.Store(&favorites)
	}

	prefs := preference.DefaultNotificationPrefs()
	if ok, err := s.readJSON(ctx, preference.KeyNotificationPrefs, &prefs); err != nil {
		return err
	} else if ok {
		s.notificationPrefs.Store(&prefs)
	}

	var rawTheme string
	if ok, err := s.readJSON(ctx, preference.KeyTheme, &rawTheme); err != nil {
		return err
	} else if ok {
		if theme, parseErr := preference.ParseTheme(rawTheme); parseErr == nil {
			s.theme.Store(&theme)
		} else {
			s.logger.WarnContext(ctx, "ignoring stored theme", "value", rawTheme)
		}
	}

	conference, found, err := s.store.Get(ctx, preference.KeyStandingsConference)
	if err != nil {
		return fmt.Errorf("read %s: %w", preference.KeyStandingsConference, err)
	}
	if found {
		conference = strings.TrimSpace(conference)
		s.standingsConference.Store(&conference)
	}

	s.logger.InfoContext(ctx, "preferences loaded", "favorites", s.Favorites().Len())
	return nil
}

// readJSON decodes key into out. A corrupt value is logged and reported as
// absent so the caller keeps its default.
func (s *PreferenceService) readJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return false, nil
	}
	if err := sonic.UnmarshalString(raw, out); err != nil {
		s.logger.WarnContext(ctx, "ignoring corrupt stored preference", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *PreferenceService) Favorites() preference.Favorites {
	return *s.favorites.Load()
}

func (s *PreferenceService) IsFavorite(teamID string) bool {
	return s.Favorites().Has(teamID)
}

func (s *PreferenceService) AddFavorite(ctx context.Context, teamID string) (preference.Favorites, error) {
	return s.updateFavorites(ctx, teamID, func(f preference.Favorites, id string) preference.Favorites {
		return f.With(id)
	})
}

func (s *PreferenceService) RemoveFavorite(ctx context.Context, teamID string) (preference.Favorites, error) {
	return s.updateFavorites(ctx, teamID, func(f preference.Favorites, id string) preference.Favorites {
		return f.Without(id)
	})
}

// ToggleFavorite flips membership and reports whether the team is now a favorite.
func (s *PreferenceService) ToggleFavorite(ctx context.Context, teamID string) (bool, error) {
	next, err := s.updateFavorites(ctx, teamID, func(f preference.Favorites, id string) preference.Favorites {
		if f.Has(id) {
			return f.Without(id)
		}
		return f.With(id)
	})
	if err != nil {
		return false, err
	}
	return next.Has(strings.TrimSpace(teamID)), nil
}

func (s *PreferenceService) updateFavorites(
	ctx context.Context,
	teamID string,
	change func(preference.Favorites, string) preference.Favorites,
) (preference.Favorites, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return s.Favorites(), fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	next := change(s.Favorites(), teamID)
	s.favorites.Store(&next)
	s.mu.Unlock()

	s.persistJSON(ctx, preference.KeyFavorites, func() any { return s.Favorites().IDs() })
	s.emitFavorites(next)
	return next, nil
}

// OnFavoritesChanged registers fn for every favorites mutation.
func (s *PreferenceService) OnFavoritesChanged(fn func(preference.Favorites)) {
	if fn == nil {
		return
	}
	s.listenersMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.listenersMu.Unlock()
}

func (s *PreferenceService) emitFavorites(f preference.Favorites) {
	s.listenersMu.RLock()
	listeners := append([]func(preference.Favorites){}, s.listeners...)
	s.listenersMu.RUnlock()
	for _, fn := range listeners {
		fn(f)
	}
}

func (s *PreferenceService) NotificationPrefs() preference.NotificationPrefs {
	return *s.notificationPrefs.Load()
}

func (s *PreferenceService) SetNotificationPrefs(ctx context.Context, prefs preference.NotificationPrefs) preference.NotificationPrefs {
	s.mu.Lock()
	s.notificationPrefs.Store(&prefs)
	s.mu.Unlock()

	s.persistJSON(ctx, preference.KeyNotificationPrefs, func() any { return s.NotificationPrefs() })
	return prefs
}

func (s *PreferenceService) Theme() preference.Theme {
	return *s.theme.Load()
}

func (s *PreferenceService) SetTheme(ctx context.Context, raw string) (preference.Theme, error) {
	theme, err := preference.ParseTheme(raw)
	if err != nil {
		return s.Theme(), fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.mu.Lock()
	s.theme.Store(&theme)
	s.mu.Unlock()

	s.persistJSON(ctx, preference.KeyTheme, func() any { return string(s.Theme()) })
	return theme, nil
}

func (s *PreferenceService) StandingsConference() string {
	return *s.standingsConference.Load()
}

// SetStandingsConference remembers the selected conference as a raw string.
// An empty id forgets the selection.
func (s *PreferenceService) SetStandingsConference(ctx context.Context, conferenceID string) string {
	conferenceID = strings.TrimSpace(conferenceID)
	s.mu.Lock()
	s.standingsConference.Store(&conferenceID)
	s.mu.Unlock()

	s.persist(ctx, preference.KeyStandingsConference, func(ctx context.Context) error {
		current := s.StandingsConference()
		if current == "" {
			return s.store.Delete(ctx, preference.KeyStandingsConference)
		}
		return s.store.Set(ctx, preference.KeyStandingsConference, current)
	})
	return conferenceID
}

func (s *PreferenceService) persistJSON(ctx context.Context, key string, current func() any) {
	s.persist(ctx, key, func(ctx context.Context) error {
		raw, err := sonic.MarshalString(current())
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		return s.store.Set(ctx, key, raw)
	})
}

// persist writes in the background. Writes are serialized and each one reads
// the latest value when it runs, so the store always converges on the newest
// state even if goroutines are scheduled out of order.
func (s *PreferenceService) persist(ctx context.Context, key string, write func(context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.persistMu.Lock()
		defer s.persistMu.Unlock()

		writeCtx, cancel := context.WithTimeout(ctx, persistTimeout)
		defer cancel()
		if err := write(writeCtx); err != nil {
			s.logger.WarnContext(writeCtx, "persist preference failed", "key", key, "error", err)
		}
	}()
}

// Flush waits for background writes to finish or ctx to end.
func (s *PreferenceService) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
