// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/fadilmartias/skillmatch/internal/config"
	"github.com/fadilmartias/skillmatch/internal/database"
	"gorm.io/gorm"
)

// New returns a migrated in-memory sqlite database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DBConfig{Driver: "sqlite", Path: ":memory:"}, &config.AppConfig{Env: "test"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
