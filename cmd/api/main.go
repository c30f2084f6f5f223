package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/janytree/storefront-dashboard/api/routes"
	"github.com/janytree/storefront-dashboard/internal/app"
	"github.com/janytree/storefront-dashboard/internal/invoice"
	"github.com/janytree/storefront-dashboard/internal/orders"
	"github.com/janytree/storefront-dashboard/internal/ordersync"
	"github.com/janytree/storefront-dashboard/internal/report"
	"github.com/janytree/storefront-dashboard/pkg/config"
	"github.com/janytree/storefront-dashboard/pkg/logger"
	"github.com/janytree/storefront-dashboard/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Report.Location()
	if err != nil {
		return err
	}

	redisClient, err := app.ConnectRedis(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
	}

	store, err := app.NewSnapshotStore(redisClient, cfg.Redis)
	if err != nil {
		return err
	}
	source, err := app.NewOrderSource(cfg.Imweb)
	if err != nil {
		return err
	}

	syncer, err := ordersync.NewSyncer(ordersync.Params{
		Source:  source,
		Store:   store,
		Logger:  logg,
		Metrics: metrics.NewSnapshotMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		return err
	}
	reports, err := report.NewService(store, syncer, invoice.Options{Location: loc})
	if err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:   cfg,
			Logger:   logg,
			Reports:  reports,
			Syncer:   syncer,
			Redis:    redisClient,
			Location: loc,
			Gatherer: prometheus.DefaultGatherer,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"addr":   addr,
		"source": orders.SourceName(source),
		"redis":  redisClient != nil,
	})
	logg.Info(ctx, "starting api server")

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if cfg.Sync.Enabled {
		scheduler, err := app.NewScheduler(cfg, logg, redisClient, syncer, prometheus.DefaultRegisterer)
		if err != nil {
			return err
		}
		group.Go(func() error {
			if err := scheduler.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	logg.Info(ctx, "api server shut down gracefully")
	return nil
}
