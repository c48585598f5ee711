package cli

import (
	"github.com/spf13/cobra"
)

// NewEventsCommand lists every active event with its tasks, without
// entering the interactive menu.
func NewEventsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:           "events",
		Short:         "List active events and their tasks",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := app.Service.EventsWithTasks(cmd.Context())
			if err != nil {
				return err
			}
			renderEventsAndTasks(cmd.OutOrStdout(), details)
			return nil
		},
	}
}
