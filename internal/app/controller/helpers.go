package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lensfolio/printshop-backend/internal/app/service"
	apperrors "github.com/lensfolio/printshop-backend/internal/errors"
	"github.com/lensfolio/printshop-backend/pkg/logger"
)

// validationCodes refines VALIDATION_INVALID_INPUT for fields clients
// commonly branch on.
var validationCodes = map[string]string{
	"size":              apperrors.CatalogInvalidSize,
	"sub_options":       apperrors.CatalogSubOptionMismatch,
	"sub_option_1_id":   apperrors.CatalogSubOptionMismatch,
	"sub_option_2_id":   apperrors.CatalogSubOptionMismatch,
	"markup":            apperrors.PricingInvalidMarkup,
	"markup_percentage": apperrors.PricingInvalidMarkup,
	"cost_price":        apperrors.PricingInvalidCost,
}

// respondServiceError translates service errors at the request boundary.
func respondServiceError(c *gin.Context, log *logger.Logger, err error, action string) {
	var validation *service.ValidationError
	var inUse *service.CategoryInUseError

	switch {
	case errors.As(err, &validation):
		code, ok := validationCodes[validation.Field]
		if !ok {
			code = apperrors.ValidationInvalidInput
		}
		apperrors.RespondWithErrorFields(c, http.StatusBadRequest, code, validation.Error(), gin.H{
			"field": validation.Field,
		})
	case errors.As(err, &inUse):
		apperrors.RespondWithErrorFields(c, http.StatusConflict, apperrors.CatalogCategoryInUse,
			"Category still has products", gin.H{"product_count": inUse.Count})
	case errors.Is(err, service.ErrCategoryExists):
		apperrors.Conflict(c, apperrors.CatalogCategoryExists, "Category already exists")
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
	case errors.Is(err, service.ErrProductTypeNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductTypeNotFound, "Product type not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
	case errors.Is(err, service.ErrVariantNotFound):
		apperrors.NotFound(c, apperrors.CatalogVariantNotFound, "Variant not found")
	case errors.Is(err, service.ErrSubOptionNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Sub-option not found")
	case errors.Is(err, service.ErrNoQuote):
		apperrors.NotFound(c, apperrors.CatalogNoQuote, "No catalog rows to quote from")
	default:
		log.Error("Failed to "+action, err)
		apperrors.InternalError(c, err)
	}
}

// respondBindingError reports struct tag violations per field, falling back
// to the decoder message for malformed JSON.
func respondBindingError(c *gin.Context, log *logger.Logger, err error) {
	log.Warn("Invalid request body", map[string]interface{}{
		"error": err.Error(),
	})

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		apperrors.RespondWithValidationError(c, fields)
		return
	}
	apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid request data: "+err.Error())
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// optionalUintQuery returns nil for an absent parameter and reports a 400
// for a malformed one.
func optionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name)
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func uintQuery(c *gin.Context, name string) (uint, bool) {
	id, ok := optionalUintQuery(c, name)
	if !ok {
		return 0, false
	}
	if id == nil {
		return 0, true
	}
	return *id, true
}

func optionalFloatQuery(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid "+name)
		return 0, false
	}
	return v, true
}
