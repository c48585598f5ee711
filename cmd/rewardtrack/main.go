package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/rewardtrack/internal/cli"
	"github.com/angelmondragon/rewardtrack/internal/currencies"
	"github.com/angelmondragon/rewardtrack/internal/events"
	"github.com/angelmondragon/rewardtrack/internal/rewards"
	"github.com/angelmondragon/rewardtrack/internal/store"
	"github.com/angelmondragon/rewardtrack/internal/tasks"
	"github.com/angelmondragon/rewardtrack/pkg/config"
	"github.com/angelmondragon/rewardtrack/pkg/db"
	"github.com/angelmondragon/rewardtrack/pkg/logger"
	"github.com/angelmondragon/rewardtrack/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "rewardtrack"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "rewardtrack",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeAutoRun(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run migrations", err)
		os.Exit(1)
	}

	service, err := rewards.NewService(rewards.ServiceParams{
		CurrencyRepo: currencies.NewRepository(dbClient.DB()),
		EventRepo:    events.NewRepository(dbClient.DB()),
		TaskRepo:     tasks.NewRepository(dbClient.DB()),
		StoreRepo:    store.NewRepository(dbClient.DB()),
		Logger:       logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create reward service", err)
		os.Exit(1)
	}

	app := &cli.App{
		Service: service,
		Client:  dbClient,
		Logger:  logg,
		Config:  cfg,
	}

	if err := cli.NewRootCommand(app).ExecuteContext(ctx); err != nil {
		logg.Error(ctx, "command failed", err)
		os.Exit(1)
	}
}
