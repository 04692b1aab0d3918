package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ordersvc/internal/config"
	"ordersvc/internal/infrastructure/logger"
	"ordersvc/internal/infrastructure/mysql"
	natsinfra "ordersvc/internal/infrastructure/nats"
	"ordersvc/internal/order"
	"ordersvc/internal/server"
)

func main() {
	// Collaborators exchange prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	nc, err := natsinfra.Connect(cfg.NATS, zapLogger)
	if err != nil {
		zapLogger.Fatal("connecting to nats", zap.Error(err))
	}
	defer nc.Close()
	zapLogger.Info("nats connected", zap.String("url", nc.ConnectedUrl()))

	orderCtrl := order.NewModule(db, nc, cfg, zapLogger)

	subscriber := natsinfra.NewSubscriber(nc, cfg.NATS.QueueGroup, cfg.NATS.RequestTimeout, zapLogger)
	if err := orderCtrl.Register(subscriber); err != nil {
		zapLogger.Fatal("registering subscriptions", zap.Error(err))
	}

	healthSrv := server.New(cfg.Server.HealthPort, db, nc, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := healthSrv.Start(); err != nil {
			zapLogger.Fatal("health server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := subscriber.Shutdown(ctx); err != nil {
		zapLogger.Warn("draining subscriptions failed", zap.Error(err))
	}
	if err := healthSrv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("health server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
