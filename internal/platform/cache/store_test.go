package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "teams", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "teams", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "teams" {
				errCh <- errors.New("unexpected loaded value")
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("unexpected loader calls: got=%d want=1", got)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	store.Set(ctx, "k", 7)
	if v, ok := store.Get(ctx, "k"); !ok || v != 7 {
		t.Fatalf("unexpected value: got=%d ok=%v", v, ok)
	}

	now = now.Add(time.Minute)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_LoaderErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	ctx := context.Background()
	failing := true
	loader := func(context.Context) (string, error) {
		if failing {
			return "", errors.New("upstream down")
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(ctx, "k", loader); err == nil {
		t.Fatalf("expected loader error")
	}
	failing = false
	v, err := store.GetOrLoad(ctx, "k", loader)
	if err != nil || v != "ok" {
		t.Fatalf("unexpected result after recovery: v=%q err=%v", v, err)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore[string](0)
	ctx := context.Background()
	store.Set(ctx, "kv:a", "1")
	store.Set(ctx, "kv:b", "2")
	store.Set(ctx, "other", "3")

	store.DeletePrefix(ctx, "kv:")
	if _, ok := store.Get(ctx, "kv:a"); ok {
		t.Fatalf("expected prefixed key to be removed")
	}
	if _, ok := store.Get(ctx, "other"); !ok {
		t.Fatalf("expected unrelated key to stay")
	}
}
