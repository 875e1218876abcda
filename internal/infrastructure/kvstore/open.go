package kvstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/preference"
)

type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

func ParseBackend(raw string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(raw))) {
	case "", BackendMemory:
		return BackendMemory, nil
	case BackendSQLite:
		return BackendSQLite, nil
	case BackendPostgres:
		return BackendPostgres, nil
	default:
		return "", fmt.Errorf("unknown kv backend %q", raw)
	}
}

type Config struct {
	Backend    Backend
	SQLitePath string
	Postgres   PostgresConfig
	CacheTTL   time.Duration
}

// Open builds the configured store. The returned close func is never nil.
// Postgres reads are fronted by a TTL cache when CacheTTL is positive.
func Open(ctx context.Context, cfg Config) (preference.Store, func() error, error) {
	noClose := func() error { return nil }

	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), noClose, nil
	case BackendSQLite:
		store, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noClose, err
		}
		return store, store.Close, nil
	case BackendPostgres:
		store, err := OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, noClose, err
		}
		if cfg.CacheTTL > 0 {
			return NewCachedStore(store, cfg.CacheTTL), store.Close, nil
		}
		return store, store.Close, nil
	default:
		return nil, noClose, fmt.Errorf("unknown kv backend %q", cfg.Backend)
	}
}
