package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/cart"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/courier"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/handler"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/ledger"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/config"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.Bool("redis_enabled", cfg.RedisAddr != ""),
		zap.Bool("kafka_enabled", cfg.KafkaBrokers != ""),
		zap.Bool("courier_enabled", cfg.CourierAPIKey != ""))

	// Remote store
	store, err := repository.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := store.Migrate(); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	// Local fallback ledger
	orderLedger := ledger.NewFileLedger(cfg.LedgerPath, logger)

	// Optional integrations
	var producer service.Publisher
	var kafkaProducer *events.Producer
	if cfg.KafkaBrokers != "" {
		kafkaProducer = events.NewProducer(cfg.KafkaBrokers, logger)
		producer = kafkaProducer
		defer kafkaProducer.Close()
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events disabled")
	}

	var cartStore *cart.Store
	if cfg.RedisAddr != "" {
		cartStore = cart.NewStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		logger.Warn("REDIS_ADDR not set, cart endpoints disabled")
	}

	courierClient := courier.NewClient(cfg.CourierBaseURL, cfg.CourierAPIKey, cfg.CourierSecret, logger)
	if !courierClient.Enabled() {
		logger.Warn("Courier credentials not set, dispatch disabled")
	}

	// Services
	submitService := service.NewSubmitService(store, orderLedger, producer, logger)
	readService := service.NewReadService(store, orderLedger, logger)
	statusService := service.NewStatusService(store, courierClient, producer, logger)
	dashboardService := service.NewDashboardService(store, cfg.LowStockThreshold, logger)
	catalogService := service.NewCatalogService(store, logger)

	// Handlers
	checkoutHandler := handler.NewCheckoutHandler(submitService, logger)
	adminHandler := handler.NewAdminHandler(readService, statusService, dashboardService, logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartStore, logger)

	// Setup Gin Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/checkout", checkoutHandler.Checkout)
		v1.POST("/checkout/draft", checkoutHandler.Draft)
		v1.POST("/pricing/quote", checkoutHandler.Quote)

		v1.GET("/products", catalogHandler.ListProducts)
		v1.GET("/products/:id", catalogHandler.GetProduct)

		v1.GET("/cart/:session", cartHandler.GetCart)
		v1.PUT("/cart/:session", cartHandler.PutCart)
		v1.DELETE("/cart/:session", cartHandler.ClearCart)
		v1.GET("/wishlist/:session", cartHandler.GetWishlist)
		v1.PUT("/wishlist/:session", cartHandler.PutWishlist)
		v1.DELETE("/wishlist/:session", cartHandler.ClearWishlist)

		admin := v1.Group("/admin")
		{
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/export", adminHandler.ExportOrders)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
			admin.POST("/orders/:id/dispatch", adminHandler.DispatchOrder)
			admin.GET("/customers", adminHandler.ListCustomers)
			admin.GET("/dashboard", adminHandler.Dashboard)

			admin.POST("/products", catalogHandler.CreateProduct)
			admin.PUT("/products/:id", catalogHandler.UpdateProduct)
			admin.DELETE("/products/:id", catalogHandler.DeleteProduct)
		}

		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "healthy",
				"service": "storefront-service",
				"port":    cfg.Port,
				"redis":   cfg.RedisAddr != "",
				"kafka":   cfg.KafkaBrokers != "",
				"courier": courierClient.Enabled(),
			})
		})
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
