package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jrbgold/jrb-backend/config"
	"github.com/jrbgold/jrb-backend/internal/app/controller"
	"github.com/jrbgold/jrb-backend/internal/app/repository"
	"github.com/jrbgold/jrb-backend/internal/app/service"
	"github.com/jrbgold/jrb-backend/internal/db"
	"github.com/jrbgold/jrb-backend/internal/events"
	"github.com/jrbgold/jrb-backend/internal/middleware"
	"github.com/jrbgold/jrb-backend/internal/rates"
	"github.com/jrbgold/jrb-backend/internal/router"
	"github.com/jrbgold/jrb-backend/internal/scheduler"
	"github.com/jrbgold/jrb-backend/internal/storage"
	ws "github.com/jrbgold/jrb-backend/internal/websocket"
	"github.com/jrbgold/jrb-backend/pkg/logger"
	"github.com/jrbgold/jrb-backend/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	shutdownTimeout     = 10 * time.Second
	eventPublishTimeout = 5 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Log.Level
	if logLevel == "" {
		logLevel = "info"
		if cfg.Server.Environment == "development" {
			logLevel = "debug"
		}
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Server.Environment == "development",
	})

	logger.Info("Starting JRB Gold Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
		"store_state": cfg.Store.State,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	if err := db.Initialize(ctx, &cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}
	if err := db.Seed(db.GetDB()); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis is optional: token revocation and the rate snapshot cache need it
	var snapshotCache *rates.SnapshotCache
	if cfg.Redis.Enabled {
		if err := redis.Init(ctx, &cfg.Redis); err != nil {
			logger.Warn("Continuing without Redis", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			snapshotCache = rates.NewSnapshotCache(redis.GetClient(), cfg.Rates.CacheTTL)
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Rate provider
	if cfg.Rates.APIKey == "" {
		logger.Warn("METAL_API_KEY is not set, live rate fetches will fail and fallback rates will be used")
	}
	provider := rates.NewProvider(
		rates.NewGoldAPIClient(cfg.Rates.APIURL, cfg.Rates.APIKey, cfg.Rates.Currency),
		rates.WithFallback(cfg.Rates.Fallback),
		rates.WithInterCallDelay(cfg.Rates.InterCallDelay),
		rates.WithMetrics(rates.NewMetrics(registry)),
	)

	// Event publisher
	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info("Kafka event publisher enabled", map[string]interface{}{
			"brokers": cfg.Kafka.Brokers,
			"topic":   cfg.Kafka.Topic,
		})
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", err)
		}
	}()

	// Initialize repositories
	gormDB := db.GetDB()
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)
	wishlistRepo := repository.NewWishlistRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	metalRateRepo := repository.NewMetalRateRepository(gormDB)

	// Price list storage is optional
	var objectStore service.ObjectStore
	if cfg.S3.Bucket != "" {
		objectStore = storage.NewS3Storage(ctx, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, cfg.S3.BaseURL)
	} else {
		logger.Warn("AWS_S3_BUCKET is not set, price list publishing is disabled")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	productService := service.NewProductService(productRepo, provider)
	priceListService := service.NewPriceListService(productRepo, provider, objectStore, storage.DefaultPresignExpiry)
	cartService := service.NewCartService(cartRepo, productRepo, provider, cfg.Store.State)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, cartService, provider)
	orderService := service.NewOrderService(gormDB, orderRepo, cartRepo, provider, publisher, cfg.Store.State)
	rateService := service.NewMetalRateService(metalRateRepo, provider)

	// Rate stream
	hub := ws.NewHub()

	// Every published snapshot goes to history, cache, stream and topic
	provider.Subscribe(rateService.Listener())
	provider.Subscribe(hub.Listener())
	provider.Subscribe(events.RatesListener(publisher, eventPublishTimeout))
	if snapshotCache != nil {
		provider.Subscribe(snapshotCache.Listener())

		if snap, ok, err := snapshotCache.Load(ctx); err != nil {
			logger.Warn("Failed to load cached metal rates", map[string]interface{}{
				"error": err.Error(),
			})
		} else if ok {
			provider.Restore(snap)
		}
	}

	go hub.Run(ctx)
	if err := hub.Publish(provider.Snapshot()); err != nil {
		logger.Warn("Failed to publish initial rates to stream", map[string]interface{}{
			"error": err.Error(),
		})
	}

	rateScheduler := scheduler.NewRateScheduler(provider, cfg.Rates.Schedule)
	if err := rateScheduler.Start(); err != nil {
		logger.Fatal("Failed to start rate scheduler", err)
	}
	defer rateScheduler.Stop()

	if err := provider.RefreshAsync(ctx); err != nil {
		logger.Warn("Initial metal rate refresh not started", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService, priceListService)
	cartController := controller.NewCartController(cartService)
	wishlistController := controller.NewWishlistController(wishlistService)
	orderController := controller.NewOrderController(orderService)
	rateController := controller.NewRateController(rateService)
	rateStreamController := controller.NewRateStreamController(hub, cfg.CORS.AllowedOrigins)
	taxController := controller.NewTaxController()

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		cartController,
		wishlistController,
		orderController,
		rateController,
		rateStreamController,
		taxController,
		authMiddleware,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		cfg,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": server.Addr,
			"pid":     os.Getpid(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server gracefully...")

	rateScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
