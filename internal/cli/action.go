package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/activities-client/internal/model"
)

// ActionError is a signup or unregister that did not succeed. Its message
// is the notification the action produced.
type ActionError struct {
	Outcome model.Outcome
}

func (e *ActionError) Error() string {
	return e.Outcome.Notification.Text
}

func newSignupCmd() *cobra.Command {
	var showRoster bool

	cmd := &cobra.Command{
		Use:   "signup <activity> <email>",
		Short: "Sign a student up for an activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.Page.Load(ctx)

			outcome := app.Page.SubmitSignup(ctx, args[0], args[1])
			return printOutcome(cmd, outcome, showRoster)
		},
	}

	cmd.Flags().BoolVar(&showRoster, "show-roster", false, "Print the refreshed roster")

	return cmd
}

func newUnregisterCmd() *cobra.Command {
	var showRoster bool

	cmd := &cobra.Command{
		Use:   "unregister <activity> <email>",
		Short: "Remove a student from an activity (staff only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.Page.Load(ctx)

			outcome := app.Page.ClickUnregister(ctx, args[0], args[1])
			return printOutcome(cmd, outcome, showRoster)
		},
	}

	cmd.Flags().BoolVar(&showRoster, "show-roster", false, "Print the refreshed roster")

	return cmd
}

func printOutcome(cmd *cobra.Command, outcome model.Outcome, showRoster bool) error {
	if !outcome.Succeeded() {
		return &ActionError{Outcome: outcome}
	}

	result := ActionResult{
		Outcome:      string(outcome.Kind),
		Notification: NotificationFromModel(outcome.Notification),
	}
	if showRoster {
		r := RosterFromView(app.Page.State().Roster)
		result.Roster = &r
	}

	output(cmd).Print(result)
	return nil
}
