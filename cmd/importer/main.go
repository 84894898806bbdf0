package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"storefront-cart/internal/config"
	"storefront-cart/internal/db"
	"storefront-cart/internal/fakestore"
	"storefront-cart/internal/importer"
	"storefront-cart/internal/logging"
	"storefront-cart/internal/repository/product"
)

func main() {
	cfg := config.FromEnv()

	var catalogURL string
	flag.StringVar(&catalogURL, "url", cfg.CatalogURL, "Base URL of the remote catalog API")
	flag.Parse()

	logger := logging.New("importer", cfg.LogLevel, cfg.LogPretty)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	client, err := fakestore.New(catalogURL, nil, cfg.CatalogFetchTimeout, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("catalog client")
	}

	imp := importer.New(client, product.NewPostgres(pool, logger), logger)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Int("imported", count).Msg("import failed")
	}

	fmt.Printf("Imported %s products from %s in %s\n", humanize.Comma(int64(count)), catalogURL, time.Since(start).Truncate(time.Millisecond))
}
