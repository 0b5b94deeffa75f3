package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"playvault/internal/config"
	"playvault/internal/fulfiller"
	"playvault/internal/infrastructure/logger"
	"playvault/internal/infrastructure/mysql"
	"playvault/internal/notification"
	"playvault/internal/order"
	"playvault/internal/server"
)

func main() {
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

	var transport notification.Transport = notification.NopTransport{}
	if cfg.Notification.GatewayURL != "" {
		transport = notification.NewGatewayTransport(cfg.Notification.GatewayURL, cfg.Notification.GatewayToken)
	} else {
		zapLogger.Warn("no notification gateway configured, messages will be dropped")
	}
	dispatcher := notification.NewDispatcher(transport, zapLogger, cfg.Notification.SendTimeout)

	orderCtrl, adminCtrl := order.NewModule(db, cfg, dispatcher, zapLogger)
	fulfillerCtrl := fulfiller.NewModule(db, zapLogger)

	router := server.NewRouter(orderCtrl, adminCtrl, fulfillerCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
