package repository

import (
	"testing"

	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCategoryRepository_CreateDuplicate(t *testing.T) {
	testDB, _ := setupCatalogTest(t)
	repo := NewCategoryRepository(testDB)

	require.NoError(t, repo.Create(&model.Category{Name: "Test Category"}))
	err := repo.Create(&model.Category{Name: "Test Category"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCategoryRepository_CountAndDelete(t *testing.T) {
	testDB, f := setupCatalogTest(t)
	repo := NewCategoryRepository(testDB)
	products := NewProductRepository(testDB)

	require.NoError(t, products.Create(f.canvasProduct("Canvas", 8, 10, "4.00", 0)))
	require.NoError(t, products.Create(f.canvasProduct("Canvas", 10, 20, "20.00", 1)))

	count, err := repo.CountProducts(f.category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	empty := &model.Category{Name: "Metal Prints"}
	require.NoError(t, repo.Create(empty))
	require.NoError(t, repo.Delete(empty.ID))

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Canvas Prints", all[0].Name)

	assert.ErrorIs(t, repo.Delete(empty.ID), gorm.ErrRecordNotFound)
}
