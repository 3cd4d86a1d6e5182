package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/activities-client/internal/factory"
)

var (
	cfg    *Config
	cfgErr error
	logger *slog.Logger
	app    *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg, cfgErr = LoadConfig()
	if cfgErr != nil {
		cfg = &Config{Output: "text"}
	}
	app = nil

	rootCmd := &cobra.Command{
		Use:   "activities",
		Short: "Browse and manage extracurricular activity signups",
		Long: `activities talks to the school activities service.

Anyone can list activities and sign a student up. Staff can log in to
unregister students. The login is remembered between runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level, _ := cfg.level()
			logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			var err error
			app, err = factory.New(cfg.FactoryConfig(logger))
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Service URL (env: ACTIVITIES_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Store, "store", cfg.Store, "Credential store: memory, file, sqlite, redis (env: ACTIVITIES_STORE)")
	rootCmd.PersistentFlags().StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "Credential file or database path (env: ACTIVITIES_STORE_PATH)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for the redis store (env: ACTIVITIES_REDIS_URL)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: ACTIVITIES_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose logging")

	// Add subcommands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newSignupCmd())
	rootCmd.AddCommand(newUnregisterCmd())
	rootCmd.AddCommand(newShellCmd())
	rootCmd.AddCommand(newPortalCmd())

	return rootCmd
}

// Run executes the CLI and returns the process exit code
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)

	if app != nil {
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn("could not close credential store", slog.String("error", closeErr.Error()))
		}
	}

	if err != nil {
		NewOutput(cfg.Output, stdout, stderr).PrintError(err)
		return 1
	}
	return 0
}

// Execute runs the root command
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// output returns a formatter writing to the command's streams
func output(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
