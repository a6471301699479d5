// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// knowing which database engine produced them. Driver errors are
// translated by classify; anything it does not recognise is returned
// unchanged and should be treated as a connectivity or server fault.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when the requested row does not exist or is
// owned by another user. Handlers should translate this into an HTTP
// 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a write violates a unique constraint,
// such as registering a username or email that is already taken.
// Handlers should translate this into an HTTP 409 response.
var ErrDuplicate = errors.New("duplicate value")

// ErrReference is returned when a write points at a row that does not
// exist (for example a task for an unknown user).
var ErrReference = errors.New("referenced row does not exist")

// classify maps engine-specific constraint errors onto the sentinels
// above. The original error text is kept for logs.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %v", ErrReference, err)
		}
		return err
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062: // ER_DUP_ENTRY
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		case 1451, 1452: // ER_ROW_IS_REFERENCED_2, ER_NO_REFERENCED_ROW_2
			return fmt.Errorf("%w: %v", ErrReference, err)
		}
		return err
	}

	var pe *pq.Error
	if errors.As(err, &pe) {
		switch pe.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %v", ErrReference, err)
		}
	}
	return err
}

// checkRowsAffected turns an UPDATE or DELETE that touched nothing into
// ErrNotFound.
func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
