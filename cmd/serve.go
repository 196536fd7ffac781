package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the study session over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		origins, _ := cmd.Flags().GetStringSlice("cors-origin")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := newLogger(cmd, cmd.ErrOrStderr())
		d, err := buildDeps(ctx, cmd, logger)
		if err != nil {
			return err
		}
		defer d.Close()

		cfg := server.DefaultConfig()
		cfg.AllowOrigins = origins
		return server.New(d.session, cfg, logger).Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().StringSlice("cors-origin", nil, "Allowed CORS origin (repeatable); all origins when empty")
}
