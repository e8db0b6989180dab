package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/wheelmaster/tireshop/internal/catalog"
	"github.com/wheelmaster/tireshop/internal/orders"
	"github.com/wheelmaster/tireshop/internal/storefront"
	"github.com/wheelmaster/tireshop/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := opts.setup()
			if err != nil {
				return err
			}
			defer application.Release()
			application.EnableMetrics()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := application.Config()
			application.StartBackgroundJobs(ctx)

			srv := webserver.New(cfg.Web)
			storefront.New(
				catalog.NewReader(cfg.Catalog.Path),
				orders.NewWriter(application.Orders()),
			).Register(srv.Echo())

			g, gctx := errgroup.WithContext(ctx)
			g.Go(srv.Start)
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			if err := g.Wait(); err != nil {
				zap.L().Error("storefront stopped", zap.Error(err))
				return err
			}
			zap.L().Info("storefront stopped")
			return nil
		},
	}
}
