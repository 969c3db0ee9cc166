package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mewroo/market-history-service/app/collector"
	"github.com/mewroo/market-history-service/pkg/config"
)

func main() {
	once := flag.Bool("once", false, "collect all tickers once and exit")
	backfill := flag.String("backfill", "", "re-collect one ticker over the full lookback window and exit")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	app, err := collector.InitCollector(ctx, cfg)
	if err != nil {
		slog.Error("Failed to create collector", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if *backfill != "" {
		if err := app.Collector.Backfill(ctx, *backfill); err != nil {
			slog.Error("Backfill failed", "error", err, "ticker", *backfill)
			os.Exit(1)
		}
		return
	}

	if *once {
		app.Collector.RunOnce(ctx)
		return
	}

	app.Scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down collector...")
	cancel()

	slog.Info("Collector stopped")
}
