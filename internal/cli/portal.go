package cli

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/activities-client/internal/api"
	"github.com/mcoot/activities-client/internal/web"
)

func newPortalCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "portal",
		Short: "Serve the activities page in a browser",
		Long: `Serve the activities page on a local address.

The page keeps one session for everyone who opens it, stored in the
configured credential store, like a single browser tab would.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			host, portStr, err := net.SplitHostPort(listen)
			if err != nil {
				return fmt.Errorf("invalid listen address %q: %w", listen, err)
			}
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return fmt.Errorf("invalid listen port %q: %w", portStr, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app.Page.Load(ctx)

			router := web.NewRouter(web.RouterConfig{
				Logger: logger,
				Page:   app.Page,
			})

			serverCfg := api.DefaultServerConfig()
			serverCfg.Host = host
			serverCfg.Port = port
			server := api.NewServer(router, serverCfg, logger)

			listener, err := net.Listen("tcp", server.Addr())
			if err != nil {
				return fmt.Errorf("listen on %s: %w", server.Addr(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Serving activities at http://%s/\n", listener.Addr())
			logger.Info("portal started", slog.String("service", cfg.ServerURL))

			return server.Run(ctx, listener)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:8080", "Address to serve the page on")

	return cmd
}
