package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Querier is what repositories need from a unit of work. Queries are
// written with `?` placeholders; implementations rebind them for the
// engine in use.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	// InsertID runs an INSERT and returns the generated id.
	InsertID(ctx context.Context, query string, args ...any) (uint64, error)
}

// Session is one connection held for the duration of a unit of work.
// It must be released exactly once; Release is safe to call again.
type Session struct {
	conn     *sql.Conn
	kind     Kind
	released bool
}

// Acquire takes a dedicated connection from the pool. Connections to
// client-server engines are pinged first so a stale one is never handed
// to the caller.
func (s *Store) Acquire(ctx context.Context) (*Session, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	if s.target.Kind.ClientServer() {
		if err := conn.PingContext(ctx); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("ping connection: %w", err)
		}
	}
	return &Session{conn: conn, kind: s.target.Kind}, nil
}

// WithSession runs fn with a freshly acquired session and releases it
// afterwards, whether fn returns an error or panics.
func (s *Store) WithSession(ctx context.Context, fn func(*Session) error) error {
	sess, err := s.Acquire(ctx)
	if err != nil {
		return err
	}
	defer sess.Release()
	return fn(sess)
}

// Release returns the connection to the pool.
func (s *Session) Release() error {
	if s == nil || s.released {
		return nil
	}
	s.released = true
	if err := s.conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}

// Kind returns the engine behind the session.
func (s *Session) Kind() Kind { return s.kind }

func (s *Session) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.conn.ExecContext(ctx, s.kind.Rebind(query), args...)
}

func (s *Session) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.conn.QueryContext(ctx, s.kind.Rebind(query), args...)
}

func (s *Session) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.conn.QueryRowContext(ctx, s.kind.Rebind(query), args...)
}

// InsertID uses RETURNING on PostgreSQL, where lib/pq does not support
// LastInsertId, and the driver's LastInsertId elsewhere.
func (s *Session) InsertID(ctx context.Context, query string, args ...any) (uint64, error) {
	if s.kind == Postgres {
		var id uint64
		if err := s.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := s.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
