// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"gorm.io/gorm"

	"github.com/Leganyst/clinic-desk/internal/config"
	"github.com/Leganyst/clinic-desk/internal/db"
	"github.com/Leganyst/clinic-desk/internal/model"
)

// New возвращает чистую мигрированную БД. У in-memory SQLite у каждого
// соединения своя база, поэтому пул ограничен одним соединением.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.Default().DB
	cfg.Driver = "sqlite"
	cfg.Path = "file::memory:"
	cfg.MaxOpenConns = 1
	cfg.MaxIdleConns = 1

	gdb, err := db.NewGormDB(&cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

// Seeded — New плюс справочник model.DefaultSeed.
func Seeded(t testing.TB) *gorm.DB {
	t.Helper()

	gdb := New(t)
	if err := model.Seed(gdb, model.DefaultSeed()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return gdb
}
