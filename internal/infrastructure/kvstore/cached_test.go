package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"

	preferencemock "github.com/riskibarqy/college-baseball-live/internal/mocks/domain/preference"
	"github.com/stretchr/testify/mock"
)

func TestCachedStore_ReadsThroughOnce(t *testing.T) {
	t.Parallel()

	inner := preferencemock.NewStore(t)
	inner.On("Get", mock.Anything, "ncaa-baseball-theme").Return(`"dark"`, true, nil).Once()

	store := NewCachedStore(inner, time.Minute)
	for i := 0; i < 3; i++ {
		value, found, err := store.Get(context.Background(), "ncaa-baseball-theme")
		if err != nil || !found || value != `"dark"` {
			t.Fatalf("unexpected read %d: value=%q found=%v err=%v", i, value, found, err)
		}
	}
}

func TestCachedStore_CachesMisses(t *testing.T) {
	t.Parallel()

	inner := preferencemock.NewStore(t)
	inner.On("Get", mock.Anything, "missing").Return("", false, nil).Once()

	store := NewCachedStore(inner, time.Minute)
	for i := 0; i < 2; i++ {
		if _, found, err := store.Get(context.Background(), "missing"); err != nil || found {
			t.Fatalf("unexpected read: found=%v err=%v", found, err)
		}
	}
}

func TestCachedStore_WriteRefreshesCache(t *testing.T) {
	t.Parallel()

	inner := preferencemock.NewStore(t)
	inner.On("Set", mock.Anything, "k", "v2").Return(nil).Once()

	store := NewCachedStore(inner, time.Minute)
	if err := store.Set(context.Background(), "k", "v2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, found, err := store.Get(context.Background(), "k")
	if err != nil || !found || value != "v2" {
		t.Fatalf("unexpected cached value: value=%q found=%v err=%v", value, found, err)
	}
}

func TestCachedStore_FailedWriteEvicts(t *testing.T) {
	t.Parallel()

	inner := preferencemock.NewStore(t)
	inner.On("Set", mock.Anything, "k", "v").Return(nil).Once()
	inner.On("Set", mock.Anything, "k", "v2").Return(errors.New("db down")).Once()
	inner.On("Get", mock.Anything, "k").Return("v", true, nil).Once()

	store := NewCachedStore(inner, time.Minute)
	ctx := context.Background()
	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "k", "v2"); err == nil {
		t.Fatalf("expected write error")
	}
	value, _, err := store.Get(ctx, "k")
	if err != nil || value != "v" {
		t.Fatalf("expected read-through after failed write, got value=%q err=%v", value, err)
	}
}
