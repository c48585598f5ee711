package migrate

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestUpAndDownRoundTrip(t *testing.T) {
	dsn := "file:migrate_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db handle: %v", err)
	}

	ctx := context.Background()
	if err := Up(ctx, sqlDB); err != nil {
		t.Fatalf("goose up: %v", err)
	}

	for _, table := range []string{"currency", "events", "tasks", "store"} {
		var count int64
		err := conn.Raw(
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&count).Error
		if err != nil {
			t.Fatalf("inspect schema: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected table %q after up", table)
		}
	}

	// Up must be idempotent so startup auto-run is safe on every launch.
	if err := Up(ctx, sqlDB); err != nil {
		t.Fatalf("goose up rerun: %v", err)
	}

	if err := Run(ctx, sqlDB, "down"); err != nil {
		t.Fatalf("goose down: %v", err)
	}
	var count int64
	err = conn.Raw(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'store'",
	).Scan(&count).Error
	if err != nil {
		t.Fatalf("inspect schema after down: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected store table dropped after down")
	}
}
