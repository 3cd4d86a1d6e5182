package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List activities and their participants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.Page.Load(cmd.Context())

			output(cmd).Print(RosterFromView(state.Roster))
			return nil
		},
	}
}
