package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/congo-pay/balances/internal/config"
	"github.com/congo-pay/balances/internal/genesis"
	"github.com/congo-pay/balances/internal/infra"
	"github.com/congo-pay/balances/internal/ledger"
	"github.com/congo-pay/balances/internal/logging"
	"github.com/congo-pay/balances/internal/routes"
	"github.com/congo-pay/balances/internal/server"
)

const connectTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	led := ledger.NewInMemory()

	var db *pgxpool.Pool
	var src genesis.Source
	switch {
	case cfg.GenesisFile != "":
		src = genesis.FileSource{Path: cfg.GenesisFile}
	case cfg.GenesisDatabaseURL != "":
		db, err = infra.NewPostgresPool(ctx, cfg.GenesisDatabaseURL, connectTimeout)
		if err != nil {
			logger.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		src = genesis.PostgresSource{DB: db}
	}
	if src != nil {
		if err := genesis.Apply(ctx, src, led, logger); err != nil {
			logger.Error("apply genesis", "error", err)
			os.Exit(1)
		}
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = infra.NewRedisClient(ctx, cfg.RedisURL, connectTimeout)
		if err != nil {
			logger.Error("connect redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Warn("close redis", "error", err)
			}
		}()
	} else {
		logger.Warn("REDIS_URL not set; idempotency and rate limiting disabled")
	}

	srv, err := server.New(routes.Deps{Cfg: cfg, Ledger: led, DB: db, Cache: cache, Logger: logger})
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
