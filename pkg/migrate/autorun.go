package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/rewardtrack/pkg/config"
	"github.com/angelmondragon/rewardtrack/pkg/db"
	"github.com/angelmondragon/rewardtrack/pkg/logger"
)

// MaybeAutoRun brings the schema up to date at startup unless the
// auto-migrate flag is disabled. A fresh database file gets its full
// schema here.
func MaybeAutoRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.DB.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "path": cfg.DB.Path})
	logg.Info(ctx, "running schema migrations")

	if err := Up(ctx, sqlDB); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "schema migrations completed")
	return nil
}
