package repository

import (
	"testing"

	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type catalogFixture struct {
	canvas   model.ProductType
	metal    model.ProductType
	category model.Category
	mounts   []model.SubOption
}

func setupCatalogTest(t *testing.T) (*gorm.DB, catalogFixture) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	f := catalogFixture{
		canvas: model.ProductType{Name: "Canvas", DisplayOrder: 1, HasSubOptions: true, MaxSubOptionLevels: 1, Active: true},
		metal:  model.ProductType{Name: "Metal", DisplayOrder: 2, Active: true},
	}
	require.NoError(t, testDB.Create(&f.canvas).Error)
	require.NoError(t, testDB.Create(&f.metal).Error)

	f.category = model.Category{Name: "Canvas Prints", ProductTypeID: &f.canvas.ID}
	require.NoError(t, testDB.Create(&f.category).Error)

	for i, value := range []string{`0.75"`, `1.25"`, `1.5"`} {
		option := model.SubOption{
			ProductTypeID: f.canvas.ID,
			Level:         1,
			OptionType:    "mounting",
			Name:          value + " Mounting",
			Value:         value,
			DisplayOrder:  i + 1,
			Active:        true,
		}
		require.NoError(t, testDB.Create(&option).Error)
		f.mounts = append(f.mounts, option)
	}
	return testDB, f
}

func (f catalogFixture) canvasProduct(name string, width, height float64, cost string, mount int) *model.Product {
	return &model.Product{
		Name:          name,
		CategoryID:    f.category.ID,
		ProductTypeID: f.canvas.ID,
		Width:         width,
		Height:        height,
		CostPrice:     decimal.RequireFromString(cost),
		SubOption1ID:  &f.mounts[mount].ID,
		Active:        true,
	}
}
