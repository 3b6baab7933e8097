package service

import (
	"errors"

	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/internal/app/repository"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"gorm.io/gorm"
)

// CatalogService reads the product type and sub-option taxonomy.
type CatalogService interface {
	ListProductTypes() ([]model.ProductType, error)
	GetProductType(id uint) (*model.ProductType, error)
	ListSubOptions(productTypeID uint, level int) ([]model.SubOption, error)
	GetSubOption(id uint) (*model.SubOption, error)
}

type catalogService struct {
	productTypeRepo repository.ProductTypeRepository
	subOptionRepo   repository.SubOptionRepository
}

func NewCatalogService(productTypeRepo repository.ProductTypeRepository, subOptionRepo repository.SubOptionRepository) CatalogService {
	return &catalogService{
		productTypeRepo: productTypeRepo,
		subOptionRepo:   subOptionRepo,
	}
}

func (s *catalogService) ListProductTypes() ([]model.ProductType, error) {
	types, err := s.productTypeRepo.FindAll(false)
	if err != nil {
		logger.Error("Failed to list product types", err)
		return nil, err
	}
	return types, nil
}

// GetProductType treats inactive types as absent.
func (s *catalogService) GetProductType(id uint) (*model.ProductType, error) {
	productType, err := s.productTypeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductTypeNotFound
		}
		return nil, err
	}
	if !productType.Active {
		return nil, ErrProductTypeNotFound
	}
	return productType, nil
}

// ListSubOptions returns the active options of one level. An empty list
// means the selection step is skipped.
func (s *catalogService) ListSubOptions(productTypeID uint, level int) ([]model.SubOption, error) {
	if level < 1 || level > model.MaxSubOptionLevels {
		return nil, invalid("level", "must be 1 or %d", model.MaxSubOptionLevels)
	}
	if _, err := s.GetProductType(productTypeID); err != nil {
		return nil, err
	}

	options, err := s.subOptionRepo.FindByTypeAndLevel(productTypeID, level, false)
	if err != nil {
		logger.Error("Failed to list sub-options", err, map[string]interface{}{
			"product_type_id": productTypeID,
			"level":           level,
		})
		return nil, err
	}
	return options, nil
}

func (s *catalogService) GetSubOption(id uint) (*model.SubOption, error) {
	option, err := s.subOptionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubOptionNotFound
		}
		return nil, err
	}
	return option, nil
}
