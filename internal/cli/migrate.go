package cli

import (
	"github.com/spf13/cobra"

	"github.com/angelmondragon/rewardtrack/pkg/migrate"
)

// NewMigrateCommand applies schema migrations by hand. The default run
// applies them automatically on startup; this exists for down/status and
// for setups that disable auto-migration.
func NewMigrateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:           "migrate [up|down|status]",
		Short:         "Manage the database schema",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) > 0 {
				command = args[0]
			}
			sqlDB, err := app.Client.DB().DB()
			if err != nil {
				return err
			}
			return migrate.Run(cmd.Context(), sqlDB, command)
		},
	}
}
