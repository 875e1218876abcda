package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/college-baseball-live/internal/domain/preference"
	"github.com/riskibarqy/college-baseball-live/internal/infrastructure/kvstore"
	preferencemock "github.com/riskibarqy/college-baseball-live/internal/mocks/domain/preference"
)

func TestPreferenceService_LoadFallsBackOnCorruptValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	_ = store.Set(ctx, preference.KeyFavorites, `["2","1"]`)
	_ = store.Set(ctx, preference.KeyNotificationPrefs, `{not json`)
	_ = store.Set(ctx, preference.KeyTheme, `"neon"`)
	_ = store.Set(ctx, preference.KeyStandingsConference, "8")

	svc := NewPreferenceService(store, nil)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load preferences: %v", err)
	}

	if got := svc.Favorites().IDs(); len(got) != 2 || got[0] != "1" {
		t.Fatalf("unexpected favorites: %v", got)
	}
	if got, want := svc.NotificationPrefs(), preference.DefaultNotificationPrefs(); got != want {
		t.Fatalf("unexpected notification prefs: got=%+v want=%+v", got, want)
	}
	if got := svc.Theme(); got != preference.ThemeSystem {
		t.Fatalf("unexpected theme: got=%s want=%s", got, preference.ThemeSystem)
	}
	if got := svc.StandingsConference(); got != "8" {
		t.Fatalf("unexpected standings conference: got=%s want=8", got)
	}
}

func TestPreferenceService_MutationsPersist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	svc := NewPreferenceService(store, nil)

	changed := make(chan preference.Favorites, 4)
	svc.OnFavoritesChanged(func(f preference.Favorites) { changed <- f })

	if _, err := svc.AddFavorite(ctx, "5"); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	isFav, err := svc.ToggleFavorite(ctx, "7")
	if err != nil || !isFav {
		t.Fatalf("unexpected toggle result: fav=%v err=%v", isFav, err)
	}
	isFav, err = svc.ToggleFavorite(ctx, "5")
	if err != nil || isFav {
		t.Fatalf("unexpected toggle result: fav=%v err=%v", isFav, err)
	}
	if _, err := svc.SetTheme(ctx, "DARK"); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	svc.SetNotificationPrefs(ctx, preference.NotificationPrefs{Enabled: true, GameEnd: true})

	if err := svc.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := len(changed); got != 3 {
		t.Fatalf("unexpected change events: got=%d want=3", got)
	}

	raw, _, _ := store.Get(ctx, preference.KeyFavorites)
	if raw != `["7"]` {
		t.Fatalf("unexpected stored favorites: got=%s want=[\"7\"]", raw)
	}
	raw, _, _ = store.Get(ctx, preference.KeyTheme)
	if raw != `"dark"` {
		t.Fatalf("unexpected stored theme: got=%s", raw)
	}

	reloaded := NewPreferenceService(store, nil)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.NotificationPrefs().Enabled || reloaded.NotificationPrefs().GameStart {
		t.Fatalf("unexpected reloaded prefs: %+v", reloaded.NotificationPrefs())
	}
}

func TestPreferenceService_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := NewPreferenceService(kvstore.NewMemoryStore(), nil)
	if _, err := svc.AddFavorite(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.SetTheme(context.Background(), "sepia"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPreferenceService_EmptyStandingsConferenceDeletes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := preferencemock.NewStore(t)
	store.On("Set", mock.Anything, preference.KeyStandingsConference, "8").Return(nil).Once()
	store.On("Delete", mock.Anything, preference.KeyStandingsConference).Return(nil).Once()

	svc := NewPreferenceService(store, nil)
	svc.SetStandingsConference(ctx, "8")
	if err := svc.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	svc.SetStandingsConference(ctx, "")
	if err := svc.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func TestPreferenceService_PersistFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := preferencemock.NewStore(t)
	store.On("Set", mock.Anything, preference.KeyFavorites, mock.Anything).Return(errors.New("disk full")).Once()

	svc := NewPreferenceService(store, nil)
	next, err := svc.AddFavorite(ctx, "3")
	if err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	if !next.Has("3") || !svc.IsFavorite("3") {
		t.Fatalf("expected in-memory favorite to be kept")
	}
	if err := svc.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
}
