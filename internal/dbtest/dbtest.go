// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"log/slog"
	"path/filepath"
	"testing"

	"boardhub/internal/db"

	"gorm.io/gorm"
)

func Logger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Open returns a migrated database living in t's temp dir.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open("sqlite://"+filepath.Join(t.TempDir(), "test.sqlite"), 1, Logger())
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if sqldb, err := gdb.DB(); err == nil {
			sqldb.Close()
		}
	})
	return gdb
}
