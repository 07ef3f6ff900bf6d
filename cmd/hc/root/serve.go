package root

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"habitchart/internal/ui"
	"habitchart/internal/web"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart documents over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			e, cleanup, err := openService(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			if addr == "" {
				addr = e.cfg.Server.Addr
			}
			logger := e.logger.Named("web")
			h := web.NewHandler(e.svc, logger)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconServer, "Serving on http://"+addr))
			return web.Serve(ctx, addr, web.Routes(h, e.cfg.OutputDir, logger), logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
