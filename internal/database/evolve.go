package database

import (
	"context"
	"database/sql"
	"fmt"
)

// column is an optional column added to an already deployed table.
type column struct {
	name string
	ddl  map[Kind]string
}

// taskColumns were introduced after the first deployments; older
// databases have a tasks table without them.
var taskColumns = []column{
	{
		name: "priority",
		ddl: map[Kind]string{
			SQLite:   `ALTER TABLE tasks ADD COLUMN priority VARCHAR(10) DEFAULT 'medium'`,
			Postgres: `ALTER TABLE tasks ADD COLUMN IF NOT EXISTS priority VARCHAR(10) DEFAULT 'medium'`,
			MySQL:    `ALTER TABLE tasks ADD COLUMN priority VARCHAR(10) DEFAULT 'medium'`,
		},
	},
	{
		name: "due_date",
		ddl: map[Kind]string{
			SQLite:   `ALTER TABLE tasks ADD COLUMN due_date DATETIME`,
			Postgres: `ALTER TABLE tasks ADD COLUMN IF NOT EXISTS due_date TIMESTAMP`,
			MySQL:    `ALTER TABLE tasks ADD COLUMN due_date DATETIME(6) NULL`,
		},
	},
}

// ColumnResult reports what EvolveTasks did for one column.
type ColumnResult struct {
	Column string
	Added  bool // false when the column already existed
}

// EvolveTasks adds the priority and due_date columns to the tasks table
// when they are missing. Each ALTER commits on its own; when one fails
// the columns handled before it stay as they are and the error is
// returned together with the results so far. The connection is released
// on every path, so the procedure can simply be run again.
func EvolveTasks(ctx context.Context, s *Store) ([]ColumnResult, error) {
	var results []ColumnResult
	err := s.WithSession(ctx, func(sess *Session) error {
		for _, c := range taskColumns {
			exists, err := columnExists(ctx, sess, "tasks", c.name)
			if err != nil {
				return fmt.Errorf("inspect tasks.%s: %w", c.name, err)
			}
			if exists {
				results = append(results, ColumnResult{Column: c.name})
				continue
			}
			if _, err := sess.ExecContext(ctx, c.ddl[sess.Kind()]); err != nil {
				return fmt.Errorf("add tasks.%s: %w", c.name, err)
			}
			results = append(results, ColumnResult{Column: c.name, Added: true})
		}
		return nil
	})
	return results, err
}

// columnExists inspects the live schema. table is always a constant from
// this package and is never taken from input.
func columnExists(ctx context.Context, q *Session, table, name string) (bool, error) {
	switch q.Kind() {
	case MySQL:
		var n int
		err := q.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM information_schema.columns
			 WHERE table_schema = DATABASE() AND table_name = ? AND column_name = ?`,
			table, name).Scan(&n)
		return n > 0, err
	case Postgres:
		var n int
		err := q.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM information_schema.columns
			 WHERE table_schema = current_schema() AND table_name = ? AND column_name = ?`,
			table, name).Scan(&n)
		return n > 0, err
	}

	rows, err := q.QueryContext(ctx, "PRAGMA table_info("+table+")")
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid     int
			colName string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if colName == name {
			return true, nil
		}
	}
	return false, rows.Err()
}
