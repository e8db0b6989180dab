package repository

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrNotFound the requested row does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrSchemaViolation a constraint (foreign key, unique, not null) or a
	// column type rejected the statement
	ErrSchemaViolation = errors.New("schema violation")
	// ErrConnectionFailure the database could not be reached or failed for a non-constraint reason
	ErrConnectionFailure = errors.New("database connection failure")
)

// Classify maps a driver or gorm error onto the storage error taxonomy.
// The returned error matches both the category sentinel and the original
// error with errors.Is / errors.As.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSchemaViolation), errors.Is(err, ErrConnectionFailure):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case IsConstraintViolation(err):
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	default:
		return fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}
}

// IsConstraintViolation reports whether err was raised by the data itself
// rather than the connection: an integrity constraint (SQLSTATE class 23) or
// a data exception such as an out of range value (class 22) in PostgreSQL,
// or the matching SQLite result codes.
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23") || strings.HasPrefix(pgErr.Code, "22")
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code {
		case sqlite3.ErrConstraint, sqlite3.ErrMismatch, sqlite3.ErrTooBig:
			return true
		}
	}
	return false
}
