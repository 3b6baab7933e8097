package repository

import (
	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductVariantRepository interface {
	Create(variant *model.ProductVariant) error
	FindByID(id uint) (*model.ProductVariant, error)
	FindByProductID(productID uint) ([]model.ProductVariant, error)
	Delete(id uint) error
}

type productVariantRepository struct {
	db *gorm.DB
}

func NewProductVariantRepository(db *gorm.DB) ProductVariantRepository {
	return &productVariantRepository{db: db}
}

// Create inserts the variant. A new default variant clears the previous
// default of the same product in the same transaction.
func (r *productVariantRepository) Create(variant *model.ProductVariant) error {
	logger.Debug("Creating product variant", map[string]interface{}{
		"product_id":  variant.ProductID,
		"description": variant.Description,
		"is_default":  variant.IsDefault,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if variant.IsDefault {
			if err := tx.Model(&model.ProductVariant{}).
				Where("product_id = ? AND is_default = ?", variant.ProductID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(variant).Error
	})
	if err != nil {
		logger.Error("Failed to create product variant", err, map[string]interface{}{
			"product_id": variant.ProductID,
		})
		return err
	}

	logger.Debug("Product variant created", map[string]interface{}{
		"variant_id": variant.ID,
	})
	return nil
}

func (r *productVariantRepository) FindByID(id uint) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *productVariantRepository) FindByProductID(productID uint) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.db.Where("product_id = ?", productID).
		Order("is_default DESC, id ASC").
		Find(&variants).Error
	if err != nil {
		logger.Error("Failed to find product variants", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variants, nil
}

func (r *productVariantRepository) Delete(id uint) error {
	result := r.db.Delete(&model.ProductVariant{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete product variant", result.Error, map[string]interface{}{
			"variant_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
