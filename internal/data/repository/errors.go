package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for constraint violations, so services can tell a bad
// reference from a duplicate without inspecting driver errors.
var (
	ErrDuplicate  = errors.New("duplicate value")
	ErrForeignKey = errors.New("referenced row does not exist")
	ErrConstraint = errors.New("constraint violation")

	// ErrStatusChanged means a guarded status transition found the row in a
	// different state than expected.
	ErrStatusChanged = errors.New("status changed concurrently")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgStringTooLong       = "22001"
	pgNumericOutOfRange   = "22003"
)

// translate maps PostgreSQL constraint errors onto the sentinels above,
// keeping the constraint name for logs.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w (%s): %w", ErrDuplicate, pgErr.ConstraintName, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w (%s): %w", ErrForeignKey, pgErr.ConstraintName, err)
	case pgNotNullViolation, pgCheckViolation, pgStringTooLong, pgNumericOutOfRange:
		return fmt.Errorf("%w (%s): %w", ErrConstraint, pgErr.ColumnName+pgErr.ConstraintName, err)
	default:
		return err
	}
}
