package cli

import (
	"github.com/spf13/cobra"
)

// NewStatsCommand prints every currency balance, without entering the
// interactive menu.
func NewStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:           "stats",
		Short:         "Show currency balances",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Service.Stats(cmd.Context())
			if err != nil {
				return err
			}
			renderStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}
