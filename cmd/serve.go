package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/app"
	"github.com/abhisek/careerpath/internal/server"
	"github.com/abhisek/careerpath/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		log, err := newLogger(cmd, cfg, false)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		ctx := cmd.Context()
		shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing, version, log)
		if err != nil {
			return err
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(flushCtx); err != nil {
				log.Warn("tracer shutdown failed", "error", err)
			}
		}()

		a, err := app.New(ctx, app.Options{Config: cfg, Logger: log})
		if err != nil {
			return err
		}
		defer a.Close()

		srv := server.New(a, cfg.Server, cfg.Tracing.ServiceName, log)
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
