package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adshao/go-binance/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"spreadwatch/config"
	"spreadwatch/internal"
	"spreadwatch/internal/gateway"
	"spreadwatch/internal/metrics"
	"spreadwatch/pkg/cache"
)

const cacheFileName = "spreadwatch_cache.json"

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	_ = godotenv.Load()

	cfg, err := config.Get()
	if err != nil {
		logger.Fatal("failed to get configuration", zap.Error(err))
	}

	store, err := newStore(cfg)
	if err != nil {
		logger.Fatal("failed to open response cache", zap.Error(err))
	}

	// public market data endpoints need no API credentials
	client := binance.NewClient("", "")
	gw := gateway.NewCached(gateway.NewBinance(client), store, cfg.CacheTTL, cfg.PollInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	watcher := internal.NewWatcher(cfg, gw, m, logger, os.Stdout)

	if err := watcher.Initialize(ctx); err != nil {
		logger.Fatal("initialization failed", zap.Error(err))
	}

	// the pull endpoint starts only once the first baseline exists
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.Serve(ctx, cfg.MetricsPort)
	})
	g.Go(func() error {
		return watcher.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("terminated", zap.Error(err))
	}
	logger.Info("stopped")
}

func newStore(cfg config.Config) (cache.Store, error) {
	if !cfg.CacheEnabled {
		return cache.Noop{}, nil
	}
	return cache.NewFileStore(filepath.Join(cfg.CacheDir, cacheFileName))
}
