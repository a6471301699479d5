package database

import (
	"context"
	"testing"
)

const legacyTasks = `CREATE TABLE tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	title VARCHAR(200) NOT NULL,
	description TEXT,
	completed BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
)`

func countColumn(t *testing.T, st *Store, name string) int {
	t.Helper()
	n := 0
	err := st.WithSession(context.Background(), func(sess *Session) error {
		return sess.QueryRowContext(context.Background(),
			`SELECT COUNT(*) FROM pragma_table_info('tasks') WHERE name = ?`, name).Scan(&n)
	})
	if err != nil {
		t.Fatalf("count column %s: %v", name, err)
	}
	return n
}

func TestEvolveTasksTwice(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	err := st.WithSession(ctx, func(sess *Session) error {
		if _, err := sess.ExecContext(ctx, legacyTasks); err != nil {
			return err
		}
		_, err := sess.ExecContext(ctx,
			`INSERT INTO tasks (user_id, title, created_at, updated_at) VALUES (1, 'old', '2025-01-01 00:00:00', '2025-01-01 00:00:00')`)
		return err
	})
	if err != nil {
		t.Fatalf("seed legacy table: %v", err)
	}

	first, err := EvolveTasks(ctx, st)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(first) != 2 || !first[0].Added || !first[1].Added {
		t.Fatalf("expected both columns added, got %+v", first)
	}

	second, err := EvolveTasks(ctx, st)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	for _, r := range second {
		if r.Added {
			t.Fatalf("column %s added twice", r.Column)
		}
	}

	for _, name := range []string{"priority", "due_date"} {
		if n := countColumn(t, st, name); n != 1 {
			t.Fatalf("column %s appears %d times", name, n)
		}
	}

	var priority string
	err = st.WithSession(ctx, func(sess *Session) error {
		return sess.QueryRowContext(ctx, `SELECT priority FROM tasks WHERE title = 'old'`).Scan(&priority)
	})
	if err != nil {
		t.Fatalf("read existing row: %v", err)
	}
	if priority != "medium" {
		t.Fatalf("existing row priority = %q, want medium", priority)
	}
}

func TestEvolveTasksOnFreshSchema(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	results, err := EvolveTasks(ctx, st)
	if err != nil {
		t.Fatalf("evolve: %v", err)
	}
	for _, r := range results {
		if r.Added {
			t.Fatalf("column %s should already exist", r.Column)
		}
	}
}

func TestEvolveTasksFailureReleasesConnection(t *testing.T) {
	st := openTestStore(t)
	// No tasks table at all: the ALTER fails.
	if _, err := EvolveTasks(context.Background(), st); err == nil {
		t.Fatal("expected error without a tasks table")
	}
	if inUse := st.Stats().InUse; inUse != 0 {
		t.Fatalf("connection not released: %d in use", inUse)
	}
}
