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

	"github.com/lensfolio/printshop-backend/config"
	"github.com/lensfolio/printshop-backend/internal/app/controller"
	"github.com/lensfolio/printshop-backend/internal/app/repository"
	"github.com/lensfolio/printshop-backend/internal/app/service"
	"github.com/lensfolio/printshop-backend/internal/db"
	"github.com/lensfolio/printshop-backend/internal/middleware"
	"github.com/lensfolio/printshop-backend/internal/router"
	"github.com/lensfolio/printshop-backend/internal/scheduler"
	"github.com/lensfolio/printshop-backend/internal/seed"
	"github.com/lensfolio/printshop-backend/internal/storage"
	"github.com/lensfolio/printshop-backend/internal/websocket"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"github.com/lensfolio/printshop-backend/pkg/metrics"
	"github.com/lensfolio/printshop-backend/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Server.LogLevel
	if logLevel == "" {
		logLevel = "info"
		if cfg.Server.Environment == "development" {
			logLevel = "debug"
		}
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Server.LogFormat,
		EnableColor: cfg.Server.Environment == "development",
	})

	logger.Info("Starting print catalog server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"db_driver":   cfg.Database.Driver,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
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

	// Token revocation needs Redis; without it logout is client-side only
	var revoker service.TokenRevoker
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, admin logout will not revoke tokens", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			revoker = redis.NewRevocationStore(redis.GetClient())
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
	catalogMetrics := metrics.NewCatalogMetrics(registry)
	jobMetrics := metrics.NewJobMetrics(registry)

	// Catalog change events
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	// Initialize repositories
	database := db.GetDB()
	productTypeRepo := repository.NewProductTypeRepository(database)
	subOptionRepo := repository.NewSubOptionRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	productRepo := repository.NewProductRepository(database)
	variantRepo := repository.NewProductVariantRepository(database)
	settingRepo := repository.NewSettingRepository(database)

	// Initialize services
	catalogService := service.NewCatalogService(productTypeRepo, subOptionRepo)
	pricingService := service.NewPricingService(
		settingRepo,
		decimal.NewFromFloat(cfg.Pricing.DefaultMarkupPercentage),
		hub,
		catalogMetrics,
	)
	productService := service.NewProductService(
		productRepo,
		variantRepo,
		productTypeRepo,
		subOptionRepo,
		categoryRepo,
		pricingService,
		hub,
	)
	categoryService := service.NewCategoryService(categoryRepo, productTypeRepo, hub)
	resolverService := service.NewResolverService(catalogService, productService)
	quoteService := service.NewQuoteService(productRepo, catalogService, pricingService, catalogMetrics)
	adminAuthService := service.NewAdminAuthService(cfg.Admin, revoker)
	maintenanceService := service.NewMaintenanceService(seed.NewImporter(database), cfg.Seed.DataDir, hub, jobMetrics)

	if cfg.Admin.PasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH is not set, admin login is disabled")
	}

	// Swatch uploads are optional
	var presigner controller.SwatchPresigner
	if s3Storage := storage.NewS3Storage(context.Background(), cfg.S3); s3Storage != nil {
		presigner = s3Storage
	}

	// Initialize controllers
	productTypeController := controller.NewProductTypeController(catalogService)
	productController := controller.NewProductController(productService)
	categoryController := controller.NewCategoryController(categoryService)
	pricingController := controller.NewPricingController(pricingService, quoteService)
	resolverController := controller.NewResolverController(resolverService)
	adminController := controller.NewAdminController(adminAuthService, maintenanceService)
	uploadController := controller.NewUploadController(presigner)
	eventsController := controller.NewEventsController(hub, cfg.CORS.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(adminAuthService)

	// Scheduled rate card re-apply
	if cfg.Seed.Schedule != "" {
		seedScheduler := scheduler.NewCatalogSeedScheduler(maintenanceService, cfg.Seed.Schedule)
		if err := seedScheduler.Start(); err != nil {
			logger.Fatal("Failed to start catalog seed scheduler", err)
		}
		defer seedScheduler.Stop()
	}

	// Setup router
	r := router.NewRouter(
		productTypeController,
		productController,
		categoryController,
		pricingController,
		resolverController,
		adminController,
		uploadController,
		eventsController,
		authMiddleware,
		registry,
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
