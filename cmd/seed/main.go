package main

import (
	"context"

	"storefront-cart/internal/config"
	"storefront-cart/internal/db"
	"storefront-cart/internal/logging"
	productrepo "storefront-cart/internal/repository/product"
	"storefront-cart/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New("seed", cfg.LogLevel, cfg.LogPretty)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	n, err := seed.Apply(ctx, productrepo.NewPostgres(pool, logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("seed apply")
	}

	logger.Info().Int("products", n).Msg("seed applied")
}
