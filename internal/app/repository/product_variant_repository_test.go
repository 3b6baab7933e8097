package repository

import (
	"testing"

	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductVariantRepository_SingleDefault(t *testing.T) {
	testDB, f := setupCatalogTest(t)
	products := NewProductRepository(testDB)
	repo := NewProductVariantRepository(testDB)

	product := f.canvasProduct("Canvas", 16, 20, "8.89", 0)
	require.NoError(t, products.Create(product))

	black := &model.ProductVariant{ProductID: product.ID, Description: "Black frame", IsDefault: true}
	white := &model.ProductVariant{ProductID: product.ID, Description: "White frame", PriceModifier: decimal.RequireFromString("4.50"), IsDefault: true}
	require.NoError(t, repo.Create(black))
	require.NoError(t, repo.Create(white))

	variants, err := repo.FindByProductID(product.ID)
	require.NoError(t, err)
	require.Len(t, variants, 2)

	defaults := 0
	for _, v := range variants {
		if v.IsDefault {
			defaults++
			assert.Equal(t, white.ID, v.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}
