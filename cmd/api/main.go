package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lapiazza/storefront_api/internal/cache"
	"github.com/lapiazza/storefront_api/internal/config"
	"github.com/lapiazza/storefront_api/internal/handler"
	"github.com/lapiazza/storefront_api/internal/middleware"
	"github.com/lapiazza/storefront_api/internal/repository"
	"github.com/lapiazza/storefront_api/internal/service"
	"github.com/lapiazza/storefront_api/internal/utils"
)

// main is the application entrypoint for the La Piazza storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting storefront api")

	utils.InitJWT(cfg.JWTSecret)

	// 3. Connect storage backend. Without a Redis host the service runs on
	// the in-process store; carts then live only as long as the process.
	var store cache.Store
	backend := "memory"
	if cfg.Redis.Host != "" {
		redisStore, err := cache.NewRedisStore(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		store = redisStore
		backend = "redis"
		log.Info().Msg("redis connected successfully")
	} else {
		store = cache.NewMemoryStore()
		log.Warn().Msg("no REDIS_HOST configured, carts will not survive restarts")
	}
	defer store.Close()

	// 4. Build the immutable catalog
	catalogRepo := repository.NewCatalogRepository(repository.SeedProducts(cfg.Store.Currency))

	// 5. Initialize cart persistence
	cartStore := cache.NewCartStore(store, cfg.Store.CartKeyPrefix)

	// 6. Initialize services
	catalogSvc := service.NewCatalogService(catalogRepo, cfg.Store.Currency)
	cartSvc := service.NewCartService(catalogRepo, cartStore, cfg.Store.Currency, cfg.Store.CheckoutURL)
	customerSvc := service.NewCustomerService()

	// 7. Initialize handlers
	loginLimiter := middleware.NewInvalidAuthRateLimiter()
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(store, backend),
		Catalog: handler.NewCatalogHandler(catalogSvc),
		Cart:    handler.NewCartHandler(cartSvc, cfg.Store.DefaultCartID),
		Auth:    handler.NewAuthHandler(customerSvc, loginLimiter),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 12. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health  *handler.HealthHandler
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	Auth    *handler.AuthHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Catalog browsing (public)
	catalog := router.Group("/v1/catalog")
	{
		catalog.GET("/products", handlers.Catalog.GetProducts)
		catalog.GET("/products/:handle", handlers.Catalog.GetProduct)
		catalog.GET("/products/:handle/recommendations", handlers.Catalog.GetRecommendations)
		catalog.GET("/collections", handlers.Catalog.GetCollections)
		catalog.GET("/collections/:handle/products", handlers.Catalog.GetCollectionProducts)
		catalog.GET("/tags", handlers.Catalog.GetTags)
		catalog.GET("/vendors", handlers.Catalog.GetVendors)
		catalog.GET("/menu", handlers.Catalog.GetMenu)
		catalog.GET("/price-range", handlers.Catalog.GetPriceRange)
	}

	// Cart (session-scoped via X-Cart-Id)
	cart := router.Group("/v1/cart")
	{
		cart.GET("", handlers.Cart.GetCart)
		cart.POST("/lines", handlers.Cart.AddLine)
		cart.DELETE("/lines", handlers.Cart.RemoveLines)
		cart.PATCH("/lines/:lineId", handlers.Cart.UpdateLine)
	}

	// Customer accounts
	customers := router.Group("/v1/customers")
	{
		customers.POST("", handlers.Auth.Register)
		customers.POST("/token", handlers.Auth.Login)
		customers.GET("/me", jwtMiddleware.Handle(), handlers.Auth.Me)
	}
}

// setupLogger configures zerolog: human-readable console output during
// development, JSON in production.
func setupLogger(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
