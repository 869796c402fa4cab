package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appcart "github.com/driftwear/storefront/internal/application/cart"
	apppricing "github.com/driftwear/storefront/internal/application/pricing"
	cartdomain "github.com/driftwear/storefront/internal/domain/cart"
	"github.com/driftwear/storefront/internal/domain/pricing"
	"github.com/driftwear/storefront/internal/infrastructure/auth"
	"github.com/driftwear/storefront/internal/infrastructure/cache"
	"github.com/driftwear/storefront/internal/infrastructure/commerce"
	"github.com/driftwear/storefront/internal/infrastructure/config"
	"github.com/driftwear/storefront/internal/infrastructure/logger"
	"github.com/driftwear/storefront/internal/infrastructure/persistence"
	"github.com/driftwear/storefront/internal/infrastructure/rates"
	"github.com/driftwear/storefront/internal/infrastructure/scheduler"
	"github.com/driftwear/storefront/internal/interfaces/http/handler"
	"github.com/driftwear/storefront/internal/interfaces/http/middleware"
	"github.com/driftwear/storefront/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Cart store: Postgres in production, in-memory for local development.
	var cartRepo cartdomain.Repository
	var db *persistence.Database
	if cfg.Database.Enabled {
		db, err = persistence.NewDatabase(&cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()
		cartRepo = persistence.NewGormCartRepository(db.DB)
		log.Info("Database connected successfully")
	} else {
		cartRepo = persistence.NewMemoryCartRepository()
		log.Warn("Database disabled, carts held in memory")
	}

	platform, err := commerce.NewShopifyAdapter(&commerce.ShopifyConfig{
		Endpoint:       cfg.Commerce.Endpoint,
		AccessToken:    cfg.Commerce.AccessToken,
		TimeoutSeconds: cfg.Commerce.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to configure commerce platform", zap.Error(err))
	}

	cartService := appcart.NewService(platform, cartRepo, log)

	// Exchange rates: provider chain in front of a tiered cache. Redis adds
	// a shared tier so replicas reuse one fetched table.
	rateCache := buildRateCache(cfg, log)
	providers := []pricing.Provider{
		rates.NewOpenERAPIProvider(cfg.Rates.PrimaryURL, cfg.Rates.FetchTimeout),
		rates.NewExchangeRateAPIProvider(cfg.Rates.BackupURL, cfg.Rates.FetchTimeout),
	}
	rateService := apppricing.NewService(providers, rates.NewStaticProvider(), rateCache, cfg.Rates.CacheWindow, log)

	if cfg.Rates.RefreshEnabled {
		refresher := scheduler.NewRateRefreshScheduler(rateService, cfg.Rates.RefreshInterval, log)
		refresher.Start(context.Background())
		defer refresher.Stop()
	}

	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(cartService)
	ratesHandler := handler.NewRatesHandler(rateService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	var dbPinger handler.Pinger
	if db != nil {
		dbPinger = db
	}
	systemHandler := handler.NewSystemHandler(dbPinger)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// A bearer token identifies a returning customer; guests pass through.
	if cfg.JWT.Secret != "" {
		r.Use(middleware.OptionalAuth(auth.NewTokenVerifier(cfg.JWT)))
	}

	cartRoutes := router.NewDomainGroup("cart", "/cart")
	cartRoutes.POST("/items", cartHandler.AddToCart)
	cartRoutes.POST("/validate", cartHandler.ValidateItem)
	r.Register(cartRoutes)

	storedCartRoutes := router.NewDomainGroup("carts", "/carts")
	storedCartRoutes.GET("/:key", cartHandler.GetCart)
	storedCartRoutes.POST("/:key/items", cartHandler.AddItem)
	storedCartRoutes.PATCH("/:key/items/:variant_id", cartHandler.UpdateQuantity)
	storedCartRoutes.DELETE("/:key/items/:variant_id", cartHandler.RemoveItem)
	storedCartRoutes.DELETE("/:key", cartHandler.ClearCart)
	storedCartRoutes.POST("/:key/validate", cartHandler.ValidateCart)
	r.Register(storedCartRoutes)

	checkoutRoutes := router.NewDomainGroup("checkout", "/checkout")
	checkoutRoutes.POST("", checkoutHandler.Checkout)
	r.Register(checkoutRoutes)

	ratesRoutes := router.NewDomainGroup("rates", "/exchange-rates")
	ratesRoutes.GET("", ratesHandler.GetRates)
	r.Register(ratesRoutes)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	r.Setup()

	// Simple ping at root API level for basic liveness checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildRateCache assembles the rate cache: always an in-process tier, plus
// Redis when configured so replicas share fetched tables.
func buildRateCache(cfg *config.Config, log *zap.Logger) apppricing.Cache {
	memory := cache.NewInMemoryRateCache()
	if !cfg.Redis.Enabled {
		return memory
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, rate cache falls back to memory only", zap.Error(err))
		return memory
	}

	log.Info("Redis connected for shared rate cache", zap.String("addr", cfg.Redis.Addr()))
	return cache.NewTieredRateCache(memory, cache.NewRedisRateCache(client, ""), cfg.Rates.CacheWindow, log)
}
