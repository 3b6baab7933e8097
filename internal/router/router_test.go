package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lensfolio/printshop-backend/config"
	"github.com/lensfolio/printshop-backend/internal/app/controller"
	"github.com/lensfolio/printshop-backend/internal/app/repository"
	"github.com/lensfolio/printshop-backend/internal/app/service"
	"github.com/lensfolio/printshop-backend/internal/db"
	"github.com/lensfolio/printshop-backend/internal/middleware"
	"github.com/lensfolio/printshop-backend/internal/seed"
	"github.com/lensfolio/printshop-backend/internal/websocket"
	"github.com/lensfolio/printshop-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouterTest(t *testing.T) http.Handler {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: "test"},
		Admin:  config.AdminConfig{Username: "admin", JWTSecret: "router-secret", TokenExpiry: time.Hour},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"https://gallery.example.com"}},
	}

	registry := prometheus.NewRegistry()
	catalogMetrics := metrics.NewCatalogMetrics(registry)
	hub := websocket.NewHub()

	productTypeRepo := repository.NewProductTypeRepository(testDB)
	subOptionRepo := repository.NewSubOptionRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)

	catalogService := service.NewCatalogService(productTypeRepo, subOptionRepo)
	pricingService := service.NewPricingService(repository.NewSettingRepository(testDB), decimal.NewFromInt(50), hub, catalogMetrics)
	productService := service.NewProductService(productRepo, repository.NewProductVariantRepository(testDB), productTypeRepo, subOptionRepo, categoryRepo, pricingService, hub)
	authService := service.NewAdminAuthService(cfg.Admin, nil)

	r := NewRouter(
		controller.NewProductTypeController(catalogService),
		controller.NewProductController(productService),
		controller.NewCategoryController(service.NewCategoryService(categoryRepo, productTypeRepo, hub)),
		controller.NewPricingController(pricingService, service.NewQuoteService(productRepo, catalogService, pricingService, catalogMetrics)),
		controller.NewResolverController(service.NewResolverService(catalogService, productService)),
		controller.NewAdminController(authService, service.NewMaintenanceService(seed.NewImporter(testDB), t.TempDir(), hub, metrics.NewJobMetrics(registry))),
		controller.NewUploadController(nil),
		controller.NewEventsController(hub, cfg.CORS.AllowedOrigins),
		middleware.NewAuthMiddleware(authService),
		registry,
		cfg,
	)
	return r.Setup()
}

func TestRouter_PublicRoutes(t *testing.T) {
	handler := setupRouterTest(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/v1/product-types", http.StatusOK},
		{"/api/v1/categories", http.StatusOK},
		{"/api/v1/settings/markup", http.StatusOK},
		{"/api/v1/products/1", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	handler := setupRouterTest(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/settings/markup"},
		{http.MethodPost, "/api/v1/products"},
		{http.MethodPatch, "/api/v1/products/1/cost-price"},
		{http.MethodDelete, "/api/v1/categories/1"},
		{http.MethodDelete, "/api/v1/variants/1"},
		{http.MethodGet, "/api/v1/admin/catalog/audit"},
		{http.MethodPost, "/api/v1/admin/catalog/import"},
		{http.MethodPost, "/api/v1/admin/uploads/presigned-url"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	handler := setupRouterTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	req.Header.Set("Origin", "https://gallery.example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://gallery.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://elsewhere.example.com")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
