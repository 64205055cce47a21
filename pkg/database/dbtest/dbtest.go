// Package dbtest opens throwaway databases for repository tests.
package dbtest

import (
	"os"
	"testing"

	"gorm.io/gorm"

	"github.com/dwikikusuma/techhub-store/pkg/database"
)

// SQLite returns a fresh in-memory database closed at test cleanup.
func SQLite(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := database.Open(database.Options{Driver: database.DriverSQLite, Quiet: true})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = database.Close(db) })
	return db
}

// Postgres connects to TEST_POSTGRES_DSN and skips the test when it is unset.
func Postgres(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		tb.Skip("set TEST_POSTGRES_DSN to run postgres integration tests")
	}
	db, err := database.Open(database.Options{Driver: database.DriverPostgres, DSN: dsn, Quiet: true})
	if err != nil {
		tb.Fatalf("open postgres: %v", err)
	}
	tb.Cleanup(func() { _ = database.Close(db) })
	return db
}
