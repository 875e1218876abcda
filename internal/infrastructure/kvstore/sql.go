package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	qb "github.com/riskibarqy/college-baseball-live/internal/platform/querybuilder"
)

const tableName = "kv_entries"

// SQLStore persists entries in the kv_entries table. The same statements run
// on postgres and sqlite.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := qb.Select("value").From(tableName).Where(qb.Eq("key", key)).Limit(1).ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build select kv entry query: %w", err)
	}

	var value string
	if err := s.db.GetContext(ctx, &value, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select kv entry key=%s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	query, args, err := qb.InsertInto(tableName).
		Columns("key", "value", "updated_at").
		Values(key, value, s.now().UTC().UnixMilli()).
		Upsert([]string{"key"}, "value", "updated_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert kv entry query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert kv entry key=%s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query, args, err := qb.DeleteFrom(tableName).Where(qb.Eq("key", key)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete kv entry query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete kv entry key=%s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
