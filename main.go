package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"hexhaven/internal/config"
	"hexhaven/internal/engine/omens"
	"hexhaven/internal/server"
	"hexhaven/internal/store"
)

func main() {
	configPath := flag.String("config", "hexhaven.yaml", "config file (optional)")
	port := flag.Int("port", 0, "server port, overrides config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	var st *store.Store
	if cfg.Store.Path != "" {
		st, err = store.Open(cfg.Store.Path)
		if err != nil {
			logger.Error("open store", "path", cfg.Store.Path, "err", err)
			os.Exit(1)
		}
		defer st.Close()
		logger.Info("snapshots enabled", "path", cfg.Store.Path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, st, omens.NewRegistry(), logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
