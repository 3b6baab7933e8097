package repository

import (
	"errors"

	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter narrows the product set. Zero or nil fields are wildcards.
type ProductFilter struct {
	ProductTypeID   uint
	CategoryID      uint
	SubOption1ID    *uint
	SubOption2ID    *uint
	Width           *float64
	Height          *float64
	IncludeInactive bool
	Preload         bool
}

// NaturalKey identifies a SKU independently of its row id.
type NaturalKey struct {
	ProductTypeID uint
	Width         float64
	Height        float64
	SubOption1ID  *uint
	SubOption2ID  *uint
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByNaturalKey(key NaturalKey) (*model.Product, error)
	Update(product *model.Product) error
	UpdateCostPrice(id uint, cost decimal.Decimal) error
	Delete(id uint) error
	DeleteByIDs(ids []uint) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":            product.Name,
		"product_type_id": product.ProductTypeID,
		"size":            product.Size(),
	})

	if err := r.db.Omit(clause.Associations).Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":            product.Name,
			"product_type_id": product.ProductTypeID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) withAssociations(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Category").
		Preload("ProductType").
		Preload("SubOption1").
		Preload("SubOption2")
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.withAssociations(r.db).First(&product, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return nil, err
	}
	return &product, nil
}

// FindWithFilter returns matching products ordered by name, then width and
// height. Every supplied filter adds an AND clause, so a narrower filter
// always yields a subset.
func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"product_type_id":  filter.ProductTypeID,
		"category_id":      filter.CategoryID,
		"sub_option_1_id":  filter.SubOption1ID,
		"sub_option_2_id":  filter.SubOption2ID,
		"width":            filter.Width,
		"height":           filter.Height,
		"include_inactive": filter.IncludeInactive,
	})

	query := r.db.Model(&model.Product{})
	if filter.Preload {
		query = r.withAssociations(query)
	}
	if filter.ProductTypeID != 0 {
		query = query.Where("products.product_type_id = ?", filter.ProductTypeID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("products.category_id = ?", filter.CategoryID)
	}
	if filter.SubOption1ID != nil {
		query = query.Where("products.sub_option_1_id = ?", *filter.SubOption1ID)
	}
	if filter.SubOption2ID != nil {
		query = query.Where("products.sub_option_2_id = ?", *filter.SubOption2ID)
	}
	if filter.Width != nil {
		query = query.Where("products.width = ?", *filter.Width)
	}
	if filter.Height != nil {
		query = query.Where("products.height = ?", *filter.Height)
	}
	if !filter.IncludeInactive {
		query = query.Where("products.active = ?", true)
	}

	var products []model.Product
	err := query.
		Order("products.name ASC").
		Order("products.width ASC").
		Order("products.height ASC").
		Order("products.id ASC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"product_type_id": filter.ProductTypeID,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

// FindByNaturalKey matches null sub-option slots with IS NULL, unlike
// FindWithFilter where nil means any.
func (r *productRepository) FindByNaturalKey(key NaturalKey) (*model.Product, error) {
	query := r.db.Where("product_type_id = ? AND width = ? AND height = ?", key.ProductTypeID, key.Width, key.Height)
	query = whereNullable(query, "sub_option_1_id", key.SubOption1ID)
	query = whereNullable(query, "sub_option_2_id", key.SubOption2ID)

	var product model.Product
	if err := query.Order("id ASC").First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func whereNullable(query *gorm.DB, column string, value *uint) *gorm.DB {
	if value == nil {
		return query.Where(column + " IS NULL")
	}
	return query.Where(column+" = ?", *value)
}

// Update writes every column of the product. Associations are left alone.
func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := r.db.Omit(clause.Associations).Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) UpdateCostPrice(id uint, cost decimal.Decimal) error {
	result := r.db.Model(&model.Product{}).Where("id = ?", id).Update("cost_price", cost)
	if result.Error != nil {
		logger.Error("Failed to update product cost price", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Product cost price updated", map[string]interface{}{
		"product_id": id,
		"cost_price": cost.String(),
	})
	return nil
}

// Delete removes the product and its variants in one transaction.
func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductVariant{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
	}
	return err
}

// DeleteByIDs removes several products and their variants in one transaction.
func (r *productRepository) DeleteByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var removed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id IN ?", ids).Delete(&model.ProductVariant{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&model.Product{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete products from database", err, map[string]interface{}{
			"count": len(ids),
		})
		return 0, err
	}
	return removed, nil
}
