package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/httpserver"
	catalogsvc "storefront/internal/service/catalog"
	ordersvc "storefront/internal/service/order"
	"storefront/internal/storage"
)

func main() {
	logger := log.New(os.Stderr, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open storage: %v", err)
	}
	defer stores.Close()

	orderService := ordersvc.New(stores.Orders, logger)
	catalogService := catalogsvc.New(stores.Catalog)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, stores, httpserver.Deps{
		OrderSvc:   orderService,
		CatalogSvc: catalogService,
	}, httpserver.Options{
		MaxBodyBytes:     cfg.MaxBodyBytes,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s driver=%s", cfg.HTTPAddr, stores.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
