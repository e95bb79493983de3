package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/services/product-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/services/product-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/services/product-service-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/services/product-service-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/services/product-service-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/services/product-service-go/internal/product"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- DB ---
	connectCtx, connectCancel := context.WithTimeout(ctx, cfg.DBConnectTimeout)
	pool, err := db.NewPool(connectCtx, cfg.DatabaseURL, cfg.DBMaxConns)
	connectCancel()
	if err != nil {
		logger.Fatal("Failed Create Database Pool.", zap.Error(err))
	}
	defer pool.Close()

	repo := product.NewPostgresRepository(pool)

	// --- AMQP (optional) ---
	var publisher httpapi.EventPublisher = events.NopPublisher{}
	if cfg.EventsEnabled() {
		conn, err := events.Dial(ctx, cfg.AMQPURL)
		if err != nil {
			logger.Fatal("connect to broker", zap.Error(err))
		}
		defer conn.Close()

		pub, err := events.NewPublisher(conn, events.PublisherOptions{})
		if err != nil {
			logger.Fatal("start publisher", zap.Error(err))
		}
		defer pub.Close()
		publisher = pub
		logger.Info("product events enabled", zap.String("exchange", events.EventsExchange))
	}

	// --- HTTP ---
	h := httpapi.NewHandler(repo, httpapi.WithLogger(logger), httpapi.WithEvents(publisher))
	r := httpapi.NewRouter(h, httpapi.RouterOptions{
		Logger:           logger,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http listening", zap.String("addr", cfg.Addr()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("http server failed", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	cancel()

	logger.Info("shutdown complete")
}
