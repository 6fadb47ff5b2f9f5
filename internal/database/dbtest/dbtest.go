// Package dbtest provides throwaway SQLite-backed stores for tests.
package dbtest

import (
	"testing"

	"socialfeed/backend/internal/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New returns a migrated in-memory database that is closed when the test ends.
// The pool is pinned to one connection because every SQLite ":memory:"
// connection is a separate database.
func New(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := database.Open(sqlite.Open(":memory:"))
	if err != nil {
		tb.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	tb.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
