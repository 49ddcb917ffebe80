package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jimgas/gas-orders/internal/cachesync"
	"github.com/jimgas/gas-orders/internal/config"
	kafkax "github.com/jimgas/gas-orders/internal/kafka"
	"github.com/jimgas/gas-orders/internal/orders"
	"github.com/jimgas/gas-orders/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &cachesync.Service{
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-cachesync",
	}

	group := getenv("CACHESYNC_GROUP", "cachesync-svc")
	workers := atoiDefault(os.Getenv("CACHESYNC_WORKERS"), 4)
	topics := []string{orders.TopicOrderPlaced, orders.TopicOrderStatus}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, topics, workers)

	go func() {
		log.Printf("cachesync consumer started: group=%s topics=%v workers=%d", group, topics, workers)
		if err := cons.Start(ctx, svc.HandleOrderEvent); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Println("shutting down consumer...")
	cancel()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return def
	}
	return i
}
