package cli

import (
	"github.com/spf13/cobra"

	"github.com/angelmondragon/rewardtrack/internal/rewards"
	"github.com/angelmondragon/rewardtrack/pkg/config"
	"github.com/angelmondragon/rewardtrack/pkg/db"
	"github.com/angelmondragon/rewardtrack/pkg/logger"
)

// App bundles the wired dependencies every command shares.
type App struct {
	Service rewards.Service
	Client  *db.Client
	Logger  *logger.Logger
	Config  *config.Config
}

// NewRootCommand creates the root command. Running it with no subcommand
// starts the interactive menu.
func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rewardtrack",
		Short:         "Track tasks and spend earned rewards",
		Long:          "A personal reward system: define events with tasks and store items, earn currency by completing tasks, and spend it in the store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			menu := NewMenu(app.Service, cmd.InOrStdin(), cmd.OutOrStdout(), app.Logger)
			return menu.Run(cmd.Context())
		},
	}

	cmd.AddCommand(NewEventsCommand(app))
	cmd.AddCommand(NewStatsCommand(app))
	cmd.AddCommand(NewMigrateCommand(app))

	return cmd
}
