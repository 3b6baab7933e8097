package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lensfolio/printshop-backend/config"
	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/internal/app/repository"
	"github.com/lensfolio/printshop-backend/internal/app/service"
	"github.com/lensfolio/printshop-backend/internal/db"
	"github.com/lensfolio/printshop-backend/internal/middleware"
	"github.com/lensfolio/printshop-backend/internal/seed"
	"github.com/lensfolio/printshop-backend/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "contact-sheet-42"
)

var (
	hashOnce      sync.Once
	testAdminHash string
)

func adminConfig(t *testing.T) config.AdminConfig {
	hashOnce.Do(func() {
		hash, err := util.HashPassword(testAdminPassword)
		require.NoError(t, err)
		testAdminHash = hash
	})
	return config.AdminConfig{
		Username:     testAdminUser,
		PasswordHash: testAdminHash,
		JWTSecret:    "controller-test-secret",
		TokenExpiry:  time.Hour,
	}
}

type controllerEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	products service.ProductService
	token    string

	canvas model.ProductType
	metal  model.ProductType
	mounts []model.SubOption

	canvasPrints model.Category
	metalPrints  model.Category
}

func setupControllerTest(t *testing.T, presigner SwatchPresigner) *controllerEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	productTypeRepo := repository.NewProductTypeRepository(testDB)
	subOptionRepo := repository.NewSubOptionRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	variantRepo := repository.NewProductVariantRepository(testDB)
	settingRepo := repository.NewSettingRepository(testDB)

	catalogService := service.NewCatalogService(productTypeRepo, subOptionRepo)
	pricingService := service.NewPricingService(settingRepo, decimal.NewFromInt(50), nil, nil)
	productService := service.NewProductService(productRepo, variantRepo, productTypeRepo, subOptionRepo, categoryRepo, pricingService, nil)
	categoryService := service.NewCategoryService(categoryRepo, productTypeRepo, nil)
	resolverService := service.NewResolverService(catalogService, productService)
	quoteService := service.NewQuoteService(productRepo, catalogService, pricingService, nil)
	authService := service.NewAdminAuthService(adminConfig(t), nil)
	maintenanceService := service.NewMaintenanceService(seed.NewImporter(testDB), "../../../data/ratecards", nil, nil)

	productTypeCtrl := NewProductTypeController(catalogService)
	productCtrl := NewProductController(productService)
	categoryCtrl := NewCategoryController(categoryService)
	pricingCtrl := NewPricingController(pricingService, quoteService)
	resolverCtrl := NewResolverController(resolverService)
	adminCtrl := NewAdminController(authService, maintenanceService)
	uploadCtrl := NewUploadController(presigner)
	admin := middleware.NewAuthMiddleware(authService).RequireAdmin()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/product-types", productTypeCtrl.ListProductTypes)
	v1.GET("/product-types/:id/sub-options/:level", productTypeCtrl.ListSubOptions)
	v1.GET("/products", productCtrl.ListProducts)
	v1.GET("/products/:id", productCtrl.GetProduct)
	v1.GET("/products/:id/variants", productCtrl.ListVariants)
	v1.GET("/products/:id/price", productCtrl.GetPrice)
	v1.POST("/products", admin, productCtrl.CreateProduct)
	v1.PUT("/products/:id", admin, productCtrl.UpdateProduct)
	v1.PATCH("/products/:id/cost-price", admin, productCtrl.UpdateCostPrice)
	v1.DELETE("/products/:id", admin, productCtrl.DeleteProduct)
	v1.POST("/products/:id/variants", admin, productCtrl.CreateVariant)
	v1.DELETE("/variants/:id", admin, productCtrl.DeleteVariant)
	v1.GET("/categories", categoryCtrl.ListCategories)
	v1.POST("/categories", admin, categoryCtrl.CreateCategory)
	v1.DELETE("/categories/:id", admin, categoryCtrl.DeleteCategory)
	v1.GET("/settings/markup", pricingCtrl.GetMarkup)
	v1.POST("/settings/markup", admin, pricingCtrl.SetMarkup)
	v1.GET("/quote", pricingCtrl.Quote)
	v1.GET("/resolve", resolverCtrl.Resolve)
	v1.POST("/admin/login", adminCtrl.Login)
	v1.POST("/admin/logout", admin, adminCtrl.Logout)
	v1.GET("/admin/catalog/audit", admin, adminCtrl.Audit)
	v1.POST("/admin/catalog/dedupe", admin, adminCtrl.Deduplicate)
	v1.POST("/admin/catalog/import", admin, adminCtrl.Import)
	v1.POST("/admin/uploads/presigned-url", admin, uploadCtrl.GeneratePresignedURL)

	env := &controllerEnv{db: testDB, router: router, products: productService}

	env.canvas = model.ProductType{Name: "Canvas", DisplayOrder: 1, HasSubOptions: true, MaxSubOptionLevels: 1, Active: true}
	env.metal = model.ProductType{Name: "Metal", DisplayOrder: 2, Active: true}
	require.NoError(t, testDB.Create(&env.canvas).Error)
	require.NoError(t, testDB.Create(&env.metal).Error)

	for i, value := range []string{`0.75"`, `1.25"`, `1.5"`} {
		option := model.SubOption{
			ProductTypeID: env.canvas.ID,
			Level:         1,
			OptionType:    "mounting",
			Name:          value + " mounting",
			Value:         value,
			DisplayOrder:  i + 1,
			Active:        true,
		}
		require.NoError(t, testDB.Create(&option).Error)
		env.mounts = append(env.mounts, option)
	}

	env.canvasPrints = model.Category{Name: "Canvas Prints", ProductTypeID: &env.canvas.ID}
	env.metalPrints = model.Category{Name: "Metal Prints", ProductTypeID: &env.metal.ID}
	require.NoError(t, testDB.Create(&env.canvasPrints).Error)
	require.NoError(t, testDB.Create(&env.metalPrints).Error)

	token, err := authService.Login(testAdminUser, testAdminPassword)
	require.NoError(t, err)
	env.token = token.Token
	return env
}

func (env *controllerEnv) createCanvas(t *testing.T, size, cost string, mount int) *model.Product {
	product, err := env.products.CreateProduct(service.ProductInput{
		Name:          "Canvas " + size,
		CategoryID:    env.canvasPrints.ID,
		ProductTypeID: env.canvas.ID,
		Size:          size,
		CostPrice:     decimal.RequireFromString(cost),
		SubOption1ID:  &env.mounts[mount].ID,
	})
	require.NoError(t, err)
	return product
}

func (env *controllerEnv) createMetal(t *testing.T, size, cost string) *model.Product {
	product, err := env.products.CreateProduct(service.ProductInput{
		Name:          "Metal " + size,
		CategoryID:    env.metalPrints.ID,
		ProductTypeID: env.metal.ID,
		Size:          size,
		CostPrice:     decimal.RequireFromString(cost),
	})
	require.NoError(t, err)
	return product
}

// do sends a request and decodes the JSON envelope. A non-nil body is
// encoded as JSON unless it is already an io.Reader.
func (env *controllerEnv) do(t *testing.T, method, path string, body interface{}, admin bool) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+env.token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func (env *controllerEnv) doRequest(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	req.Header.Set("Authorization", "Bearer "+env.token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}
