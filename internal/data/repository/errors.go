package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by writes that matched no row. Lookups return
	// (nil, nil) instead.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate wraps a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")
	// ErrConflict is returned when a guarded update was refused by existing data.
	ErrConflict = errors.New("conflicting record")
)

// uniqueViolation reports whether err is a unique violation, optionally on a
// specific constraint.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func foreignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
