package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"storefront/internal/config"
	"storefront/internal/importer"
	"storefront/internal/storage"
)

func main() {
	var (
		filePath string
		storeID  string
	)
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV file")
	flag.StringVar(&storeID, "store", "", "Store identifier to import into")
	flag.Parse()

	if filePath == "" || storeID == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
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

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, stores.Catalog, storeID, filepath.Dir(filePath))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d items: %v", count, err)
	}

	fmt.Printf("Imported %d items into store %s in %s\n", count, storeID, time.Since(start).Truncate(time.Millisecond))
}
