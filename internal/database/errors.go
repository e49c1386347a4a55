package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrStorage marks every failure reported by the underlying store.
var ErrStorage = errors.New("storage failure")

// ErrDuplicate is returned when a unique index rejects a write.
var ErrDuplicate = fmt.Errorf("%w: duplicate key", ErrStorage)

const pgUniqueViolation = "23505"

// StorageError wraps a driver error so callers can match ErrStorage or
// ErrDuplicate while keeping the driver message.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrDuplicate, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

func IsUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
