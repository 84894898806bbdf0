package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"storefront-cart/internal/config"
	"storefront-cart/internal/db"
	"storefront-cart/internal/events"
	"storefront-cart/internal/fakestore"
	"storefront-cart/internal/httpserver"
	"storefront-cart/internal/logging"
	productrepo "storefront-cart/internal/repository/product"
	cartsvc "storefront-cart/internal/service/cart"
	productsvc "storefront-cart/internal/service/product"
	sessionsvc "storefront-cart/internal/service/session"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New("api", cfg.LogLevel, cfg.LogPretty)

	ctx := context.Background()
	deps := httpserver.Deps{AllowOrigins: cfg.CORSAllowOrigins}

	var products *productsvc.Service
	switch cfg.CatalogSource {
	case config.CatalogSourcePostgres:
		dbpool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect to db")
		}
		defer dbpool.Close()
		deps.DB = dbpool
		products = productsvc.New(productrepo.NewPostgres(dbpool, logger.With().Str("component", "products").Logger()))
	case config.CatalogSourceRemote:
		snapshot, err := loadRemoteCatalog(ctx, cfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Str("url", cfg.CatalogURL).Msg("load catalog")
		}
		products = snapshot
	default:
		logger.Fatal().Str("source", cfg.CatalogSource).Msg("unknown CATALOG_SOURCE")
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.RabbitURL != "" {
		rabbit, err := events.Dial(cfg.RabbitURL, cfg.EventsExchange, logger.With().Str("component", "events").Logger())
		if err != nil {
			logger.Fatal().Err(err).Msg("connect to rabbitmq")
		}
		defer rabbit.Close()
		publisher = rabbit
	} else {
		logger.Warn().Msg("RABBITMQ_URL not set, finalized carts are not published")
	}

	sessions := sessionsvc.New(cfg.MaxSessions, cfg.SessionTTL, logger.With().Str("component", "sessions").Logger())
	deps.ProductSvc = products
	deps.SessionSvc = sessions
	deps.CartSvc = cartsvc.New(sessions, products, publisher, cfg.CurrencySymbol, logger.With().Str("component", "cart").Logger())

	srv, err := httpserver.New(cfg.HTTPAddr, logger, deps)
	if err != nil {
		logger.Fatal().Err(err).Msg("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("server stopped")
	}
}

// loadRemoteCatalog fetches the catalog once; the server then reads from the
// in-memory snapshot for its whole lifetime.
func loadRemoteCatalog(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*productsvc.Service, error) {
	client, err := fakestore.New(cfg.CatalogURL, nil, cfg.CatalogFetchTimeout, logger.With().Str("component", "fakestore").Logger())
	if err != nil {
		return nil, err
	}
	products, err := productsvc.LoadSnapshot(ctx, client)
	if err != nil {
		return nil, err
	}
	list, _ := products.List(ctx)
	logger.Info().Int("products", len(list)).Msg("catalog loaded")
	return products, nil
}
