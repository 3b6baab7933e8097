package repository

import (
	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductTypeRepository interface {
	Create(productType *model.ProductType) error
	FindAll(includeInactive bool) ([]model.ProductType, error)
	FindByID(id uint) (*model.ProductType, error)
	FindByName(name string) (*model.ProductType, error)
	Update(productType *model.ProductType) error
}

type productTypeRepository struct {
	db *gorm.DB
}

func NewProductTypeRepository(db *gorm.DB) ProductTypeRepository {
	return &productTypeRepository{db: db}
}

func (r *productTypeRepository) Create(productType *model.ProductType) error {
	if err := r.db.Create(productType).Error; err != nil {
		logger.Error("Failed to create product type in database", err, map[string]interface{}{
			"name": productType.Name,
		})
		return err
	}

	logger.Debug("Product type created in database", map[string]interface{}{
		"product_type_id": productType.ID,
		"name":            productType.Name,
	})
	return nil
}

func (r *productTypeRepository) FindAll(includeInactive bool) ([]model.ProductType, error) {
	query := r.db.Model(&model.ProductType{})
	if !includeInactive {
		query = query.Where("active = ?", true)
	}

	var types []model.ProductType
	if err := query.Order("display_order ASC, id ASC").Find(&types).Error; err != nil {
		logger.Error("Failed to list product types from database", err)
		return nil, err
	}
	return types, nil
}

func (r *productTypeRepository) FindByID(id uint) (*model.ProductType, error) {
	var productType model.ProductType
	if err := r.db.First(&productType, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.Debug("Product type not found in database", map[string]interface{}{
				"product_type_id": id,
			})
		} else {
			logger.Error("Failed to find product type by ID", err, map[string]interface{}{
				"product_type_id": id,
			})
		}
		return nil, err
	}
	return &productType, nil
}

func (r *productTypeRepository) FindByName(name string) (*model.ProductType, error) {
	var productType model.ProductType
	if err := r.db.Where("name = ?", name).First(&productType).Error; err != nil {
		return nil, err
	}
	return &productType, nil
}

func (r *productTypeRepository) Update(productType *model.ProductType) error {
	if err := r.db.Save(productType).Error; err != nil {
		logger.Error("Failed to update product type in database", err, map[string]interface{}{
			"product_type_id": productType.ID,
		})
		return err
	}
	return nil
}
