package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Faultbox/rocket-loadout/internal/httpapi"
	"github.com/Faultbox/rocket-loadout/internal/logger"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the loadout API over HTTP",
		Long: `Serve exposes decode and encode as a JSON API:

  POST /loadouts/decode   {"code": "...", "verify": true}
  POST /loadouts/encode   loadout document
  GET  /loadouts/{code}
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return httpapi.Serve(ctx, a.cfg, logger.Named("httpapi"))
		},
	}
}
