package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lensfolio/printshop-backend/internal/app/service"
	apperrors "github.com/lensfolio/printshop-backend/internal/errors"
	"github.com/lensfolio/printshop-backend/internal/middleware"
)

type ProductTypeController struct {
	catalogService service.CatalogService
}

func NewProductTypeController(catalogService service.CatalogService) *ProductTypeController {
	return &ProductTypeController{catalogService: catalogService}
}

// ListProductTypes returns active product types in display order
// GET /api/v1/product-types
func (ctrl *ProductTypeController) ListProductTypes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	types, err := ctrl.catalogService.ListProductTypes()
	if err != nil {
		respondServiceError(c, log, err, "list product types")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{
		"product_types": types,
		"count":         len(types),
	})
}

// ListSubOptions returns the active sub-options of one level
// GET /api/v1/product-types/:id/sub-options/:level
func (ctrl *ProductTypeController) ListSubOptions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid level")
		return
	}

	options, err := ctrl.catalogService.ListSubOptions(id, level)
	if err != nil {
		respondServiceError(c, log, err, "list sub-options")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{
		"sub_options": options,
		"count":       len(options),
	})
}
