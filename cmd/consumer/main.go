package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mewroo/market-history-service/app/consumer"
	"github.com/mewroo/market-history-service/pkg/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	priceConsumer, err := consumer.InitPriceConsumer(ctx, cfg)
	if err != nil {
		slog.Error("Failed to create price consumer", "error", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		priceConsumer.Consumer.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		priceConsumer.Consumer.Subscribe(ctx)
	}()

	<-quit

	slog.Info("Shutting down price consumer...")
	cancel()
	if err := priceConsumer.Consumer.Stop(); err != nil {
		slog.Error("Stop error", "error", err)
	}
	priceConsumer.Close()

	slog.Info("Price consumer stopped")
}
