package app

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janytree/storefront-dashboard/internal/demo"
	"github.com/janytree/storefront-dashboard/internal/imweb"
	"github.com/janytree/storefront-dashboard/internal/ordersync"
	"github.com/janytree/storefront-dashboard/internal/snapshot"
	"github.com/janytree/storefront-dashboard/pkg/config"
	"github.com/janytree/storefront-dashboard/pkg/logger"
)

func TestNewOrderSourceDemo(t *testing.T) {
	src, err := NewOrderSource(config.ImwebConfig{APIKey: config.DemoAPIKey, DemoOrderCount: 12, DemoSeed: 7})
	require.NoError(t, err)

	demoSrc, ok := src.(demo.Source)
	require.True(t, ok)
	assert.Equal(t, 12, demoSrc.Count)
	assert.Equal(t, uint64(7), demoSrc.Seed)
}

func TestNewOrderSourceImweb(t *testing.T) {
	src, err := NewOrderSource(config.ImwebConfig{APIKey: "key", APISecret: "secret", BaseURL: "https://api.imweb.me/v2"})
	require.NoError(t, err)
	_, ok := src.(*imweb.Client)
	assert.True(t, ok)

	_, err = NewOrderSource(config.ImwebConfig{APIKey: "key"})
	assert.Error(t, err)
}

func TestConnectRedisDisabled(t *testing.T) {
	client, err := ConnectRedis(context.Background(), config.RedisConfig{}, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewSnapshotStoreFallsBackToMemory(t *testing.T) {
	store, err := NewSnapshotStore(nil, config.RedisConfig{})
	require.NoError(t, err)
	_, ok := store.(*snapshot.MemoryStore)
	assert.True(t, ok)
}

func TestNewSchedulerWithoutRedisUsesLocalLock(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	syncer, err := ordersync.NewSyncer(ordersync.Params{
		Source: demo.Source{Count: 3},
		Store:  snapshot.NewMemoryStore(),
		Logger: logg,
	})
	require.NoError(t, err)

	cfg := &config.Config{Sync: config.SyncConfig{Interval: time.Minute, Window: 24 * time.Hour}}
	scheduler, err := NewScheduler(cfg, logg, nil, syncer, prometheus.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, time.Minute, scheduler.Interval())

	require.NoError(t, scheduler.RunOnce(context.Background()))
	assert.Equal(t, ordersync.StateDone, syncer.Status().State)
	assert.Equal(t, 3, syncer.Status().OrderCount)
}
