package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/internal/app/service"
	apperrors "github.com/lensfolio/printshop-backend/internal/errors"
	"github.com/lensfolio/printshop-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ProductRequest is the body of product create and update. Size wins over
// width/height when both are sent.
type ProductRequest struct {
	Name                  string           `json:"name" binding:"required"`
	CategoryID            uint             `json:"category_id" binding:"required"`
	ProductTypeID         uint             `json:"product_type_id" binding:"required"`
	Size                  string           `json:"size"`
	Width                 float64          `json:"width" binding:"gte=0"`
	Height                float64          `json:"height" binding:"gte=0"`
	CostPrice             *decimal.Decimal `json:"cost_price" binding:"required"`
	MarkupPercentage      *decimal.Decimal `json:"markup_percentage"`
	ProviderCategoryID    string           `json:"provider_category_id" binding:"max=50"`
	ProviderSubcategoryID string           `json:"provider_subcategory_id" binding:"max=50"`
	ProviderOptionID      string           `json:"provider_option_id" binding:"max=50"`
	SubOption1ID          *uint            `json:"sub_option_1_id"`
	SubOption2ID          *uint            `json:"sub_option_2_id"`
	Active                *bool            `json:"active"`
}

func (r *ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:                  r.Name,
		CategoryID:            r.CategoryID,
		ProductTypeID:         r.ProductTypeID,
		Width:                 r.Width,
		Height:                r.Height,
		Size:                  r.Size,
		CostPrice:             *r.CostPrice,
		MarkupPercentage:      r.MarkupPercentage,
		ProviderCategoryID:    r.ProviderCategoryID,
		ProviderSubcategoryID: r.ProviderSubcategoryID,
		ProviderOptionID:      r.ProviderOptionID,
		SubOption1ID:          r.SubOption1ID,
		SubOption2ID:          r.SubOption2ID,
		Active:                r.Active,
	}
}

type CostPriceRequest struct {
	CostPrice *decimal.Decimal `json:"cost_price" binding:"required"`
}

type VariantRequest struct {
	Description   string          `json:"description" binding:"required,max=255"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	IsDefault     bool            `json:"is_default"`
}

// ListProducts returns priced products of one type, narrowed by sub-options
// and size
// GET /api/v1/products?product_type_id=&sub_option_1_id=&sub_option_2_id=&size=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productTypeID, ok := uintQuery(c, "product_type_id")
	if !ok {
		return
	}
	sub1, ok := optionalUintQuery(c, "sub_option_1_id")
	if !ok {
		return
	}
	sub2, ok := optionalUintQuery(c, "sub_option_2_id")
	if !ok {
		return
	}

	listing, err := ctrl.productService.ListProducts(service.ProductListOptions{
		ProductTypeID: productTypeID,
		SubOption1ID:  sub1,
		SubOption2ID:  sub2,
		Size:          c.Query("size"),
	})
	if err != nil {
		respondServiceError(c, log, err, "list products")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{
		"products":          listing.Products,
		"count":             len(listing.Products),
		"markup_percentage": listing.MarkupPercentage.InexactFloat64(),
	})
}

// GetProduct returns one product with its category, type and sub-options resolved
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		respondServiceError(c, log, err, "fetch product")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{"product": product})
}

// ListVariants GET /api/v1/products/:id/variants
func (ctrl *ProductController) ListVariants(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	variants, err := ctrl.productService.ListVariants(id)
	if err != nil {
		respondServiceError(c, log, err, "list variants")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{
		"variants": variants,
		"count":    len(variants),
	})
}

// GetPrice prices a product with a variant, or its default variant
// GET /api/v1/products/:id/price?variant_id=
func (ctrl *ProductController) GetPrice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := optionalUintQuery(c, "variant_id")
	if !ok {
		return
	}

	price, err := ctrl.productService.PriceWithVariant(id, variantID)
	if err != nil {
		respondServiceError(c, log, err, "price product")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{
		"product_id":             price.ProductID,
		"variant_id":             price.VariantID,
		"variant_description":    price.VariantDescription,
		"customer_price":         price.CustomerPrice,
		"variant_price_modifier": price.VariantPriceModifier,
		"total":                  price.Total,
		"markup_percentage":      price.MarkupPercentage,
	})
}

// CreateProduct (admin)
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, log, err)
		return
	}

	product, err := ctrl.productService.CreateProduct(req.toInput())
	if err != nil {
		respondServiceError(c, log, err, "create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
	})
	apperrors.Success(c, http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct (admin)
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, log, err)
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, req.toInput())
	if err != nil {
		respondServiceError(c, log, err, "update product")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{"product": product})
}

// UpdateCostPrice (admin)
// PATCH /api/v1/products/:id/cost-price
func (ctrl *ProductController) UpdateCostPrice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CostPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, log, err)
		return
	}

	if err := ctrl.productService.UpdateCostPrice(id, *req.CostPrice); err != nil {
		respondServiceError(c, log, err, "update cost price")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{
		"product_id": id,
		"cost_price": req.CostPrice.InexactFloat64(),
	})
}

// DeleteProduct removes the product and its variants (admin)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		respondServiceError(c, log, err, "delete product")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{"message": "Product deleted"})
}

// CreateVariant (admin)
// POST /api/v1/products/:id/variants
func (ctrl *ProductController) CreateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, log, err)
		return
	}

	variant := &model.ProductVariant{
		Description:   req.Description,
		PriceModifier: req.PriceModifier,
		IsDefault:     req.IsDefault,
	}
	if err := ctrl.productService.CreateVariant(id, variant); err != nil {
		respondServiceError(c, log, err, "create variant")
		return
	}

	apperrors.Success(c, http.StatusCreated, gin.H{"variant": variant})
}

// DeleteVariant (admin)
// DELETE /api/v1/variants/:id
func (ctrl *ProductController) DeleteVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteVariant(id); err != nil {
		respondServiceError(c, log, err, "delete variant")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{"message": "Variant deleted"})
}
