package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"shogichess/internal/config"
	"shogichess/internal/server/game"
	httpserver "shogichess/internal/server/http"
)

const storePingInterval = 30 * time.Second

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	log := cfg.Logger()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store game.Store = game.NewMemoryStore()
	if cfg.StoreKind == config.StoreRedis {
		rdb, err := game.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis")
		}
		defer rdb.Close()
		store = game.NewRedisStore(rdb, cfg.GameTTL)
	}
	log.Info().Str("store", cfg.StoreKind).Int("depth", cfg.DefaultDepth).Int("max_depth", cfg.MaxDepth).Msg("starting")

	h := httpserver.NewHandler(game.NewManager(store, log), httpserver.SearchLimits{
		DefaultDepth: cfg.DefaultDepth,
		MaxDepth:     cfg.MaxDepth,
		NodeLimit:    cfg.NodeLimit,
		Timeout:      cfg.SearchTimeout,
		Concurrency:  cfg.AIConcurrency,
	}, log)
	srv := httpserver.NewServer(cfg.Addr, httpserver.Routes(h, cfg.WebDir), log)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return srv.Run(ctx) })
	eg.Go(func() error { return game.Watch(ctx, store, storePingInterval, log) })
	if err := eg.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
	log.Info().Msg("shut down")
}
