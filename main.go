package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkout-service/controllers"
	"checkout-service/database"
	"checkout-service/kafka"
	"checkout-service/repository"
	"checkout-service/routes"
	servicepkg "checkout-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if err := database.Connect(cfg.PostgresConfig(), logger); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	// Catalog accessor, optionally fronted by a Redis read cache.
	var catalog repository.ProductRepository = repository.NewGormProductRepository(database.DB)
	var cacheInvalidator servicepkg.CacheInvalidator
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, product cache disabled", zap.Error(err))
		} else {
			cached := repository.NewCachedProductRepository(catalog, redisClient, cfg.ProductCacheTTL, logger)
			catalog = cached
			cacheInvalidator = cached
		}
	}

	// Order events are best-effort; the service runs without Kafka.
	var publisher servicepkg.OrderEventPublisher
	if cfg.KafkaBrokers != "" {
		producer := kafka.NewProducer(cfg.KafkaBrokerList(), cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events disabled")
	}

	cartRepo := repository.NewGormCartRepository(database.DB)
	orderRepo := repository.NewGormOrderRepository(database.DB)
	wishlistRepo := repository.NewGormWishlistRepository(database.DB)
	checkoutStore := repository.NewGormCheckoutStore(database.DB)

	cartService := servicepkg.NewCartService(cartRepo, catalog, logger)
	checkoutService := servicepkg.NewCheckoutService(checkoutStore, publisher, cacheInvalidator, logger)
	orderService := servicepkg.NewOrderService(orderRepo, logger)
	wishlistService := servicepkg.NewWishlistService(wishlistRepo, catalog, logger)

	cartController := controllers.NewCartController(cartService)
	orderController := controllers.NewOrderController(checkoutService, orderService)
	wishlistController := controllers.NewWishlistController(wishlistService)

	r := gin.New()
	r.Use(gin.Recovery())

	// Global request-logging middleware
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
		)
	})

	// 30-second request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "checkout-service"})
	})

	routes.RegisterRoutes(r, cartController, orderController, wishlistController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Checkout service started", zap.String("port", cfg.Port))
	<-quit
	logger.Info("Shutting down checkout service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
