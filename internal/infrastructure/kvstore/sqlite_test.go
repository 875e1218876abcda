//go:build cgo

package kvstore

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStore(t *testing.T) {
	t.Parallel()

	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)
}

func TestSQLiteStore_ReopenKeepsValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	first, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := first.Set(ctx, "ncaa-baseball-favorites", `["99","2"]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = first.Close()

	second, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	value, found, err := second.Get(ctx, "ncaa-baseball-favorites")
	if err != nil || !found || value != `["99","2"]` {
		t.Fatalf("unexpected value after reopen: value=%q found=%v err=%v", value, found, err)
	}
}
