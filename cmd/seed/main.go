package main

import (
	"context"
	"flag"
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/seed"
	"storefront/internal/storage"
)

func main() {
	storeID := flag.String("store", "demo", "Store identifier to seed")
	flag.Parse()

	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)
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

	n, err := seed.Apply(ctx, stores.Catalog, *storeID)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied store=%s inserted=%d", *storeID, n)
}
