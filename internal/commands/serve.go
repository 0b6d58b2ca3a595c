package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerview/internal/accounts"
	"github.com/cleared-dev/ledgerview/internal/dashboard"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the account views over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			src, closeSource, err := accounts.NewSource(cfg.Source)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeSource(); err != nil {
					logger.Warn("closing account source", "error", err)
				}
			}()

			if !logger.Enabled(context.Background(), slog.LevelDebug) {
				gin.SetMode(gin.ReleaseMode)
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			svc := dashboard.NewService(src, dashboard.Options{
				Strict:   cfg.Source.Strict,
				Logger:   logger,
				Registry: reg,
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			// The first load may fail; the API reports needsRefresh until a
			// refresh succeeds.
			if _, err := svc.Refresh(ctx); err != nil {
				logger.Warn("initial refresh failed", "error", err)
			}

			return svc.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")

	return cmd
}
