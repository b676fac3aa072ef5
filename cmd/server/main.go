package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/foodie-express/internal/auth"
	"github.com/Lixing-Zhang/foodie-express/internal/config"
	"github.com/Lixing-Zhang/foodie-express/internal/gateway"
	"github.com/Lixing-Zhang/foodie-express/internal/handlers"
	"github.com/Lixing-Zhang/foodie-express/internal/repository"
	"github.com/Lixing-Zhang/foodie-express/internal/service"
	"github.com/Lixing-Zhang/foodie-express/internal/session"
	"github.com/Lixing-Zhang/foodie-express/internal/storage"
	"github.com/Lixing-Zhang/foodie-express/internal/storage/memory"
	"github.com/Lixing-Zhang/foodie-express/internal/storage/postgres"
	"github.com/Lixing-Zhang/foodie-express/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting foodie express api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"storage", cfg.Storage.Driver,
	)

	ctx := context.Background()

	// Initialize cart snapshot storage
	store, closeStore, err := openStore(ctx, cfg.Storage, log)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Initialize repositories
	catalogRepo := repository.NewInMemoryCatalogRepository()

	// Initialize services
	pricing := service.Pricing{
		DeliveryFee:           cfg.Checkout.DeliveryFee,
		FreeDeliveryThreshold: cfg.Checkout.FreeDeliveryThreshold,
	}
	submitter := gateway.NewSimulated(cfg.Checkout.Delay, cfg.Checkout.FailureRate, log)

	router := handlers.NewRouter(handlers.RouterConfig{
		Catalog:        service.NewCatalogService(catalogRepo),
		Carts:          service.NewCartService(catalogRepo, pricing),
		Checkout:       service.NewCheckoutService(submitter, pricing, log),
		Sessions:       session.NewManager(store, log),
		Auth:           auth.NewAuthenticator(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
	}, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openStore returns the snapshot store selected by the storage driver
func openStore(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (storage.KeyValueStore, func(), error) {
	switch cfg.Driver {
	case config.StoragePostgres:
		pg, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		log.Info("cart snapshots stored in postgres")
		return pg, func() { pg.Close() }, nil
	default:
		log.Info("cart snapshots stored in memory")
		return memory.New(), func() {}, nil
	}
}
