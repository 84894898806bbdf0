package main

import (
	"context"
	"flag"

	"storefront-cart/internal/config"
	"storefront-cart/internal/db"
	"storefront-cart/internal/logging"
	"storefront-cart/internal/migrate"
)

func main() {
	down := flag.Bool("down", false, "Roll back every migration instead of applying them")
	flag.Parse()

	cfg := config.FromEnv()
	logger := logging.New("migrate", cfg.LogLevel, cfg.LogPretty)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if *down {
		if err := migrate.Down(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("roll back migrations")
		}
		logger.Info().Msg("migrations rolled back")
		return
	}

	version, err := migrate.Apply(ctx, pool)
	if err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}

	logger.Info().Uint("version", version).Msg("migrations applied")
}
