package repository

import (
	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type SubOptionRepository interface {
	Create(option *model.SubOption) error
	FindByID(id uint) (*model.SubOption, error)
	FindByTypeAndLevel(productTypeID uint, level int, includeInactive bool) ([]model.SubOption, error)
	FindByTypeLevelValue(productTypeID uint, level int, value string) (*model.SubOption, error)
	Update(option *model.SubOption) error
}

type subOptionRepository struct {
	db *gorm.DB
}

func NewSubOptionRepository(db *gorm.DB) SubOptionRepository {
	return &subOptionRepository{db: db}
}

func (r *subOptionRepository) Create(option *model.SubOption) error {
	if err := r.db.Create(option).Error; err != nil {
		logger.Error("Failed to create sub-option in database", err, map[string]interface{}{
			"product_type_id": option.ProductTypeID,
			"level":           option.Level,
			"value":           option.Value,
		})
		return err
	}
	return nil
}

func (r *subOptionRepository) FindByID(id uint) (*model.SubOption, error) {
	var option model.SubOption
	if err := r.db.First(&option, id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *subOptionRepository) FindByTypeAndLevel(productTypeID uint, level int, includeInactive bool) ([]model.SubOption, error) {
	logger.Debug("Finding sub-options", map[string]interface{}{
		"product_type_id": productTypeID,
		"level":           level,
	})

	query := r.db.Where("product_type_id = ? AND level = ?", productTypeID, level)
	if !includeInactive {
		query = query.Where("active = ?", true)
	}

	var options []model.SubOption
	if err := query.Order("display_order ASC").Find(&options).Error; err != nil {
		logger.Error("Failed to find sub-options", err, map[string]interface{}{
			"product_type_id": productTypeID,
			"level":           level,
		})
		return nil, err
	}
	return options, nil
}

func (r *subOptionRepository) FindByTypeLevelValue(productTypeID uint, level int, value string) (*model.SubOption, error) {
	var option model.SubOption
	err := r.db.
		Where("product_type_id = ? AND level = ? AND value = ?", productTypeID, level, value).
		Order("id ASC").
		First(&option).Error
	if err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *subOptionRepository) Update(option *model.SubOption) error {
	if err := r.db.Save(option).Error; err != nil {
		logger.Error("Failed to update sub-option in database", err, map[string]interface{}{
			"sub_option_id": option.ID,
		})
		return err
	}
	return nil
}
