package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as staff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app.Page.Load(ctx)

			if err := app.Page.SubmitLogin(ctx, username, password); err != nil {
				return err
			}

			output(cmd).PrintMessage(fmt.Sprintf("Logged in as %s", app.Sessions.Current().DisplayName()))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Username")
	cmd.Flags().StringVar(&password, "pass", "", "Password")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.Sessions.Restore(ctx); err != nil {
				logger.Warn("could not restore session", slog.String("error", err.Error()))
			}
			app.Page.ClickLogout(ctx)

			output(cmd).PrintMessage("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Restore(cmd.Context()); err != nil {
				return err
			}

			output(cmd).Print(SessionFromModel(app.Sessions.Current()))
			return nil
		},
	}
}
