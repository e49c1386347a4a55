package test_utils

import (
	"testing"

	"github.com/finanzapp/finanzapp/internal/config"
	"github.com/finanzapp/finanzapp/internal/database"
)

// NewInMemoryDB creates a new in-memory SQLite database for testing
// Each database is completely isolated from others
func NewInMemoryDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(config.Database{Driver: config.DriverSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// SetupTestDB creates a new in-memory SQLite database and applies all migrations
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db := NewInMemoryDB(t)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	return db
}

// TruncateAll empties every table so a shared database can be reused between tests.
func TruncateAll(t *testing.T, db *database.DB) {
	t.Helper()

	statements := []string{"DELETE FROM budgets", "DELETE FROM transactions", "DELETE FROM categories"}
	if db.Driver == config.DriverPostgres {
		statements = []string{"TRUNCATE budgets, transactions, categories RESTART IDENTITY"}
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to truncate tables: %v", err)
		}
	}
}
