package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/iliyamo/task-manager/internal/database"
)

func TestRunEvolvesLegacyTable(t *testing.T) {
	ctx := context.Background()
	url := "sqlite:///" + filepath.Join(t.TempDir(), "legacy.db")

	store, err := database.Open(ctx, url)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	err = store.WithSession(ctx, func(s *database.Session) error {
		_, err := s.ExecContext(ctx, `CREATE TABLE tasks (id INTEGER PRIMARY KEY, title TEXT NOT NULL)`)
		return err
	})
	store.Close()
	if err != nil {
		t.Fatalf("legacy schema: %v", err)
	}

	run(ctx, url)
	run(ctx, url)

	store, err = database.Open(ctx, url)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	results, err := database.EvolveTasks(ctx, store)
	if err != nil {
		t.Fatalf("evolve: %v", err)
	}
	for _, r := range results {
		if r.Added {
			t.Fatalf("column %s added again", r.Column)
		}
	}
}

func TestRunSwallowsErrors(t *testing.T) {
	// an unknown scheme fails at open; run only logs it
	run(context.Background(), "oracle://nowhere/db")
}
