package service

import (
	"sync"
	"testing"

	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/internal/app/repository"
	"github.com/lensfolio/printshop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []CatalogEvent
}

func (p *recordingPublisher) Publish(event CatalogEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	db         *gorm.DB
	publisher  *recordingPublisher
	catalog    CatalogService
	pricing    PricingService
	products   ProductService
	categories CategoryService
	resolver   ResolverService
	quotes     QuoteService

	canvas model.ProductType
	framed model.ProductType
	metal  model.ProductType

	mounts []model.SubOption // canvas level 1
	colors []model.SubOption // framed level 1
	depths []model.SubOption // framed level 2

	canvasPrints model.Category
	framedPrints model.Category
	metalPrints  model.Category
}

func setupServiceTest(t *testing.T) *testEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	env := &testEnv{db: testDB, publisher: &recordingPublisher{}}

	productTypeRepo := repository.NewProductTypeRepository(testDB)
	subOptionRepo := repository.NewSubOptionRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	variantRepo := repository.NewProductVariantRepository(testDB)
	settingRepo := repository.NewSettingRepository(testDB)

	env.catalog = NewCatalogService(productTypeRepo, subOptionRepo)
	env.pricing = NewPricingService(settingRepo, decimal.NewFromInt(50), env.publisher, nil)
	env.products = NewProductService(productRepo, variantRepo, productTypeRepo, subOptionRepo, categoryRepo, env.pricing, env.publisher)
	env.categories = NewCategoryService(categoryRepo, productTypeRepo, env.publisher)
	env.resolver = NewResolverService(env.catalog, env.products)
	env.quotes = NewQuoteService(productRepo, env.catalog, env.pricing, nil)

	env.canvas = model.ProductType{Name: "Canvas", DisplayOrder: 1, HasSubOptions: true, MaxSubOptionLevels: 1, Active: true}
	env.framed = model.ProductType{Name: "Framed Canvas", DisplayOrder: 2, HasSubOptions: true, MaxSubOptionLevels: 2, Active: true}
	env.metal = model.ProductType{Name: "Metal", DisplayOrder: 3, Active: true}
	for _, pt := range []*model.ProductType{&env.canvas, &env.framed, &env.metal} {
		require.NoError(t, testDB.Create(pt).Error)
	}

	env.mounts = env.createOptions(t, env.canvas.ID, 1, "mounting", `0.75"`, `1.25"`, `1.5"`)
	env.colors = env.createOptions(t, env.framed.ID, 1, "frame_color", "Black", "White")
	env.depths = env.createOptions(t, env.framed.ID, 2, "mounting", `0.75"`, `1.25"`)

	env.canvasPrints = env.createCategory(t, "Canvas Prints", env.canvas.ID)
	env.framedPrints = env.createCategory(t, "Framed Canvas Prints", env.framed.ID)
	env.metalPrints = env.createCategory(t, "Metal Prints", env.metal.ID)
	return env
}

func (env *testEnv) createOptions(t *testing.T, productTypeID uint, level int, optionType string, values ...string) []model.SubOption {
	var options []model.SubOption
	for i, value := range values {
		option := model.SubOption{
			ProductTypeID: productTypeID,
			Level:         level,
			OptionType:    optionType,
			Name:          value,
			Value:         value,
			DisplayOrder:  i + 1,
			Active:        true,
		}
		require.NoError(t, env.db.Create(&option).Error)
		options = append(options, option)
	}
	return options
}

func (env *testEnv) createCategory(t *testing.T, name string, productTypeID uint) model.Category {
	category := model.Category{Name: name, ProductTypeID: &productTypeID}
	require.NoError(t, env.db.Create(&category).Error)
	return category
}

func (env *testEnv) createProduct(t *testing.T, input ProductInput) *model.Product {
	product, err := env.products.CreateProduct(input)
	require.NoError(t, err)
	return product
}

func (env *testEnv) canvasInput(size, cost string, mount int) ProductInput {
	return ProductInput{
		Name:          "Canvas " + size,
		CategoryID:    env.canvasPrints.ID,
		ProductTypeID: env.canvas.ID,
		Size:          size,
		CostPrice:     decimal.RequireFromString(cost),
		SubOption1ID:  &env.mounts[mount].ID,
	}
}

func (env *testEnv) framedInput(size, cost string, color, depth int) ProductInput {
	return ProductInput{
		Name:          "Framed Canvas " + size,
		CategoryID:    env.framedPrints.ID,
		ProductTypeID: env.framed.ID,
		Size:          size,
		CostPrice:     decimal.RequireFromString(cost),
		SubOption1ID:  &env.colors[color].ID,
		SubOption2ID:  &env.depths[depth].ID,
	}
}

func (env *testEnv) metalInput(size, cost string) ProductInput {
	return ProductInput{
		Name:          "Metal " + size,
		CategoryID:    env.metalPrints.ID,
		ProductTypeID: env.metal.ID,
		Size:          size,
		CostPrice:     decimal.RequireFromString(cost),
	}
}

func ids(products []model.PricedProduct) []uint {
	out := make([]uint, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
