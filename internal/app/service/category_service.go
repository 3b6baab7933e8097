package service

import (
	"errors"
	"strings"

	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/internal/app/repository"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name          string
	Description   string
	ProductTypeID *uint
	DisplayOrder  int
}

type CategoryService interface {
	ListCategories() ([]model.Category, error)
	CreateCategory(input CategoryInput) (*model.Category, error)
	DeleteCategory(id uint) error
}

type categoryService struct {
	categoryRepo    repository.CategoryRepository
	productTypeRepo repository.ProductTypeRepository
	publisher       EventPublisher
}

func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	productTypeRepo repository.ProductTypeRepository,
	publisher EventPublisher,
) CategoryService {
	return &categoryService{
		categoryRepo:    categoryRepo,
		productTypeRepo: productTypeRepo,
		publisher:       publisherOrNoop(publisher),
	}
}

func (s *categoryService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) CreateCategory(input CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	if _, err := s.categoryRepo.FindByName(name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.ProductTypeID != nil {
		if _, err := s.productTypeRepo.FindByID(*input.ProductTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, invalid("product_type_id", "product type %d does not exist", *input.ProductTypeID)
			}
			return nil, err
		}
	}

	category := &model.Category{
		Name:          name,
		Description:   strings.TrimSpace(input.Description),
		ProductTypeID: input.ProductTypeID,
		DisplayOrder:  input.DisplayOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		// lost a race with a concurrent create
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	event := newEvent(EventCategoryCreated)
	event.CategoryID = category.ID
	s.publisher.Publish(event)
	return category, nil
}

// DeleteCategory refuses while any product, active or not, references the
// category and reports how many do.
func (s *categoryService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Refusing to delete category with products", map[string]interface{}{
			"category_id":   id,
			"product_count": count,
		})
		return &CategoryInUseError{CategoryID: id, Count: count}
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	logger.Info("Category deleted", map[string]interface{}{
		"category_id": id,
	})
	event := newEvent(EventCategoryDeleted)
	event.CategoryID = id
	s.publisher.Publish(event)
	return nil
}
