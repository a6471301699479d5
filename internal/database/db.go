package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Store is the process-wide handle to the configured database. It is
// built once at startup and passed to whatever needs a Session.
type Store struct {
	db     *sql.DB
	target Target
}

// Open parses the connection string, opens the pool and verifies the
// connection.
func Open(ctx context.Context, rawURL string) (*Store, error) {
	target, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(target.Driver, target.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", target.Kind, err)
	}

	if target.Kind == SQLite {
		// One writer at a time; requests queue for the single connection.
		db.SetMaxOpenConns(1)
	} else {
		// Pool settings
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(30 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	// Ping with timeout
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", target.Kind, err)
	}
	log.Printf("database: using %s (%s)", target.Kind, target)
	return &Store{db: db, target: target}, nil
}

// Kind returns the engine the store is connected to.
func (s *Store) Kind() Kind { return s.target.Kind }

// Stats exposes pool statistics.
func (s *Store) Stats() sql.DBStats { return s.db.Stats() }

// Close releases the pool.
func (s *Store) Close() error { return s.db.Close() }
