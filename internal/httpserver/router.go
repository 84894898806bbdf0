package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront-cart/internal/cart"
	"storefront-cart/internal/domain"
	"storefront-cart/internal/service/session"
)

type productService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
}

type sessionService interface {
	Open(ctx context.Context) (*session.Session, error)
	Lookup(ctx context.Context, id string) (*cart.Store, error)
	End(ctx context.Context, id string) error
	TTLSeconds() int
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (*domain.CartView, error)
	Add(ctx context.Context, sessionID string, productID int64) (*domain.CartView, error)
	Remove(ctx context.Context, sessionID string, productID int64) (*domain.CartView, error)
	Toggle(ctx context.Context, sessionID string, productID int64) (*domain.CartView, bool, error)
	Clear(ctx context.Context, sessionID string) (*domain.CartView, error)
	Finalize(ctx context.Context, sessionID string) (*domain.CartView, error)
}

// Deps are the collaborators the router needs. DB is optional.
type Deps struct {
	ProductSvc   productService
	SessionSvc   sessionService
	CartSvc      cartService
	DB           Pinger
	AllowOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, deps Deps) (*gin.Engine, error) {
	if deps.ProductSvc == nil || deps.SessionSvc == nil || deps.CartSvc == nil {
		return nil, errors.New("httpserver: product, session and cart services are required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	if len(deps.AllowOrigins) > 0 {
		corsMiddleware, err := newCORS(deps.AllowOrigins)
		if err != nil {
			return nil, err
		}
		router.Use(corsMiddleware)
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB))

	router.GET("/products", listProductsHandler(deps.ProductSvc))
	router.GET("/products/:productID", getProductHandler(deps.ProductSvc))

	router.POST("/sessions", openSessionHandler(deps.SessionSvc))

	sessions := router.Group("/sessions/:sessionID", sessionMiddleware(deps.SessionSvc))
	sessions.DELETE("", endSessionHandler(deps.SessionSvc))
	sessions.GET("/cart", getCartHandler(deps.CartSvc))
	sessions.DELETE("/cart", clearCartHandler(deps.CartSvc))
	sessions.POST("/cart/items", addCartItemHandler(deps.CartSvc))
	sessions.DELETE("/cart/items/:productID", removeCartItemHandler(deps.CartSvc))
	sessions.POST("/cart/items/:productID/toggle", toggleCartItemHandler(deps.CartSvc))
	sessions.POST("/cart/finalize", finalizeCartHandler(deps.CartSvc))

	return router, nil
}

func newCORS(origins []string) (gin.HandlerFunc, error) {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			break
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = origins
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cors.New(cfg), nil
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := logger.Debug()
		switch {
		case status >= 500:
			ev = logger.Error()
		case status >= 400:
			ev = logger.Info()
		}
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ev.Str("method", c.Request.Method).
			Str("route", route).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http: request")
	}
}
