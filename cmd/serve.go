package cmd

import (
	"os/signal"
	"syscall"

	"github.com/jumpypanter/serverforms/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form engine over HTTP for resident deployments",
		Long:  "serve keeps the session registry alive in one process and exposes start/answer/view/reload over HTTP, so multiple players can fill forms concurrently.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, err := cmd.Flags().GetString("addr")
			if err != nil {
				return err
			}
			if addr == "" {
				addr = app.listenAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(addr, app.engine, app.viewer, app.catalog, app.resolver, app.logger)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address (defaults to listen.addr setting)")
	return cmd
}
