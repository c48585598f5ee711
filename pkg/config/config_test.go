package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.App.IsDev() {
		t.Fatalf("expected dev env by default, got %q", cfg.App.Env)
	}
	if cfg.DB.Path != "reward_system.db" {
		t.Fatalf("unexpected default db path %q", cfg.DB.Path)
	}
	if !cfg.DB.AutoMigrate {
		t.Fatalf("auto-migrate should default to true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REWARDTRACK_APP_ENV", "prod")
	t.Setenv("REWARDTRACK_DB_PATH", "/tmp/tracker.db")
	t.Setenv("REWARDTRACK_DB_AUTO_MIGRATE", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.App.IsProd() {
		t.Fatalf("expected prod env, got %q", cfg.App.Env)
	}
	if cfg.DB.AutoMigrate {
		t.Fatalf("auto-migrate override not honored")
	}
	if got := cfg.DB.DSN(); got != "file:/tmp/tracker.db?_foreign_keys=on" {
		t.Fatalf("unexpected DSN %q", got)
	}
}

func TestLoadRejectsBlankPath(t *testing.T) {
	t.Setenv("REWARDTRACK_DB_PATH", "   ")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for blank db path")
	}
}
