package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Select("value", "updated_at").
		From("kv_entries").
		Where(Eq("key", "ncaa-baseball-theme")).
		OrderBy("key").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT value, updated_at FROM kv_entries WHERE key = $1 ORDER BY key LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "ncaa-baseball-theme" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderUpsert(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("kv_entries").
		Columns("key", "value", "updated_at").
		Values("k", "v", "now").
		Upsert([]string{"key"}, "value", "updated_at").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, $3) ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "k" || args[2] != "now" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderValueMismatch(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertInto("kv_entries").Columns("key", "value").Values("k").ToSQL(); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestDeleteBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := DeleteFrom("kv_entries").Where(Eq("key", "d1-standings-conference")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	wantQuery := "DELETE FROM kv_entries WHERE key = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "d1-standings-conference" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("kv_entries").ToSQL(); err == nil {
		t.Fatalf("expected unconditional delete to be rejected")
	}
}
