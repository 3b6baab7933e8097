package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lensfolio/printshop-backend/config"
	"github.com/lensfolio/printshop-backend/internal/app/controller"
	"github.com/lensfolio/printshop-backend/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	productTypeController *controller.ProductTypeController
	productController     *controller.ProductController
	categoryController    *controller.CategoryController
	pricingController     *controller.PricingController
	resolverController    *controller.ResolverController
	adminController       *controller.AdminController
	uploadController      *controller.UploadController
	eventsController      *controller.EventsController
	authMiddleware        *middleware.AuthMiddleware
	metricsGatherer       prometheus.Gatherer
	config                *config.Config
}

func NewRouter(
	productTypeController *controller.ProductTypeController,
	productController *controller.ProductController,
	categoryController *controller.CategoryController,
	pricingController *controller.PricingController,
	resolverController *controller.ResolverController,
	adminController *controller.AdminController,
	uploadController *controller.UploadController,
	eventsController *controller.EventsController,
	authMiddleware *middleware.AuthMiddleware,
	metricsGatherer prometheus.Gatherer,
	cfg *config.Config,
) *Router {
	return &Router{
		productTypeController: productTypeController,
		productController:     productController,
		categoryController:    categoryController,
		pricingController:     pricingController,
		resolverController:    resolverController,
		adminController:       adminController,
		uploadController:      uploadController,
		eventsController:      eventsController,
		authMiddleware:        authMiddleware,
		metricsGatherer:       metricsGatherer,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Print catalog API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.metricsGatherer, promhttp.HandlerOpts{})))

	admin := r.authMiddleware.RequireAdmin()

	v1 := router.Group("/api/v1")
	{
		productTypes := v1.Group("/product-types")
		{
			productTypes.GET("", r.productTypeController.ListProductTypes)
			productTypes.GET("/:id/sub-options/:level", r.productTypeController.ListSubOptions)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)
			products.GET("/:id/variants", r.productController.ListVariants)
			products.GET("/:id/price", r.productController.GetPrice)

			products.POST("", admin, r.productController.CreateProduct)
			products.PUT("/:id", admin, r.productController.UpdateProduct)
			products.PATCH("/:id/cost-price", admin, r.productController.UpdateCostPrice)
			products.DELETE("/:id", admin, r.productController.DeleteProduct)
			products.POST("/:id/variants", admin, r.productController.CreateVariant)
		}

		v1.DELETE("/variants/:id", admin, r.productController.DeleteVariant)

		v1.GET("/resolve", r.resolverController.Resolve)
		v1.GET("/quote", r.pricingController.Quote)

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.ListCategories)
			categories.POST("", admin, r.categoryController.CreateCategory)
			categories.DELETE("/:id", admin, r.categoryController.DeleteCategory)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("/markup", r.pricingController.GetMarkup)
			settings.POST("/markup", admin, r.pricingController.SetMarkup)
		}

		v1.GET("/catalog/events", r.eventsController.Stream)

		adminGroup := v1.Group("/admin")
		{
			adminGroup.POST("/login", r.adminController.Login)
			adminGroup.POST("/logout", admin, r.adminController.Logout)
			adminGroup.POST("/uploads/presigned-url", admin, r.uploadController.GeneratePresignedURL)

			catalog := adminGroup.Group("/catalog", admin)
			{
				catalog.GET("/audit", r.adminController.Audit)
				catalog.POST("/dedupe", r.adminController.Deduplicate)
				catalog.POST("/import", r.adminController.Import)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
