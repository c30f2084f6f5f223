// Package app builds the dependencies shared by the binaries under cmd/.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/janytree/storefront-dashboard/internal/cron"
	"github.com/janytree/storefront-dashboard/internal/demo"
	"github.com/janytree/storefront-dashboard/internal/imweb"
	"github.com/janytree/storefront-dashboard/internal/orders"
	"github.com/janytree/storefront-dashboard/internal/ordersync"
	"github.com/janytree/storefront-dashboard/internal/snapshot"
	"github.com/janytree/storefront-dashboard/pkg/config"
	"github.com/janytree/storefront-dashboard/pkg/logger"
	"github.com/janytree/storefront-dashboard/pkg/metrics"
	"github.com/janytree/storefront-dashboard/pkg/redis"
)

// NewOrderSource returns the demo generator when the API key is the demo
// sentinel, otherwise an imweb client.
func NewOrderSource(cfg config.ImwebConfig) (orders.Source, error) {
	if cfg.IsDemo() {
		return demo.Source{Count: cfg.DemoOrderCount, Seed: cfg.DemoSeed}, nil
	}
	client, err := imweb.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("build imweb client: %w", err)
	}
	return client, nil
}

// ConnectRedis returns nil without error when no endpoint is configured.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	return redis.New(ctx, cfg, logg)
}

// NewSnapshotStore shares snapshots through redis when a client is given and
// falls back to process memory otherwise.
func NewSnapshotStore(client *redis.Client, cfg config.RedisConfig) (snapshot.Store, error) {
	if client == nil {
		return snapshot.NewMemoryStore(), nil
	}
	store, err := snapshot.NewRedisStore(client, cfg.SnapshotTTL)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewScheduler registers the rolling order sync on a cron service. With redis
// the run is guarded by a shared lock so only one replica syncs per tick.
func NewScheduler(cfg *config.Config, logg *logger.Logger, client *redis.Client, syncer *ordersync.Syncer, reg prometheus.Registerer) (*cron.Service, error) {
	loc, err := cfg.Report.Location()
	if err != nil {
		return nil, err
	}
	var lock cron.Lock = cron.NewLocalLock()
	if client != nil {
		redisLock, err := cron.NewRedisLock(client, client.LockKey(ordersync.JobName), cfg.Sync.LockTTL)
		if err != nil {
			return nil, err
		}
		lock = redisLock
	}
	return cron.NewService(cron.ServiceParams{
		Logger:    logg,
		Registry:  cron.NewRegistry(ordersync.NewJob(syncer, cfg.Sync.Window, loc)),
		Lock:      lock,
		Metrics:   metrics.NewJobMetrics(reg),
		Interval:  cfg.Sync.Interval,
		OnStartup: cfg.Sync.OnStartup,
	})
}
