package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jimgas/gas-orders/internal/catalog"
	"github.com/jimgas/gas-orders/internal/config"
	"github.com/jimgas/gas-orders/internal/httpx"
	kafkax "github.com/jimgas/gas-orders/internal/kafka"
	"github.com/jimgas/gas-orders/internal/orders"
	"github.com/jimgas/gas-orders/internal/postgres"
	"github.com/jimgas/gas-orders/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	placedProd := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	placedProd.Start(ctx)
	statusProd := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatus, 1024)
	statusProd.Start(ctx)

	router := httpx.NewRouter()
	ph := &httpx.ProductsHandler{
		Store: &catalog.Repo{DB: db},
		Redis: rdb,
	}
	ph.Register(router)
	oh := &httpx.OrdersHandler{
		Store:          &orders.Repo{DB: db},
		PlacedProducer: placedProd,
		StatusProducer: statusProd,
		Redis:          rdb,
		Service:        cfg.ServiceName,
	}
	oh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	placedProd.Close()
	statusProd.Close()
	placedProd.WaitClosed()
	statusProd.WaitClosed()
}
