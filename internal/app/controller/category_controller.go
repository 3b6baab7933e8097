package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lensfolio/printshop-backend/internal/app/service"
	apperrors "github.com/lensfolio/printshop-backend/internal/errors"
	"github.com/lensfolio/printshop-backend/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

type CategoryRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Description   string `json:"description"`
	ProductTypeID *uint  `json:"product_type_id"`
	DisplayOrder  int    `json:"display_order"`
}

// ListCategories GET /api/v1/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		respondServiceError(c, log, err, "list categories")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// CreateCategory answers 409 when the name is taken (admin)
// POST /api/v1/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, log, err)
		return
	}

	category, err := ctrl.categoryService.CreateCategory(service.CategoryInput{
		Name:          req.Name,
		Description:   req.Description,
		ProductTypeID: req.ProductTypeID,
		DisplayOrder:  req.DisplayOrder,
	})
	if err != nil {
		respondServiceError(c, log, err, "create category")
		return
	}

	apperrors.Success(c, http.StatusCreated, gin.H{"category": category})
}

// DeleteCategory answers 409 with product_count while products reference
// the category (admin)
// DELETE /api/v1/categories/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		respondServiceError(c, log, err, "delete category")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{"message": "Category deleted"})
}
