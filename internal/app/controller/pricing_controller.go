package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lensfolio/printshop-backend/internal/app/service"
	apperrors "github.com/lensfolio/printshop-backend/internal/errors"
	"github.com/lensfolio/printshop-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

type PricingController struct {
	pricingService service.PricingService
	quoteService   service.QuoteService
}

func NewPricingController(pricingService service.PricingService, quoteService service.QuoteService) *PricingController {
	return &PricingController{
		pricingService: pricingService,
		quoteService:   quoteService,
	}
}

type MarkupRequest struct {
	Markup *decimal.Decimal `json:"markup" binding:"required"`
}

// GetMarkup GET /api/v1/settings/markup
func (ctrl *PricingController) GetMarkup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	markup, err := ctrl.pricingService.GetMarkup()
	if err != nil {
		respondServiceError(c, log, err, "read markup")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{
		"markup_percentage": markup.InexactFloat64(),
	})
}

// SetMarkup changes the global markup; every price is recomputed on the
// next read (admin)
// POST /api/v1/settings/markup
func (ctrl *PricingController) SetMarkup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req MarkupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, log, err)
		return
	}

	markup, err := ctrl.pricingService.SetMarkup(*req.Markup)
	if err != nil {
		respondServiceError(c, log, err, "update markup")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{
		"markup_percentage": markup.InexactFloat64(),
	})
}

// Quote prices an arbitrary size against the nearest catalog row
// GET /api/v1/quote?product_type_id=&sub_option_1_id=&sub_option_2_id=&width=&height=|size=
func (ctrl *PricingController) Quote(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	req := service.QuoteRequest{Size: c.Query("size")}
	var ok bool
	if req.ProductTypeID, ok = uintQuery(c, "product_type_id"); !ok {
		return
	}
	if req.SubOption1ID, ok = optionalUintQuery(c, "sub_option_1_id"); !ok {
		return
	}
	if req.SubOption2ID, ok = optionalUintQuery(c, "sub_option_2_id"); !ok {
		return
	}
	if req.Width, ok = optionalFloatQuery(c, "width"); !ok {
		return
	}
	if req.Height, ok = optionalFloatQuery(c, "height"); !ok {
		return
	}

	quote, err := ctrl.quoteService.Quote(req)
	if err != nil {
		respondServiceError(c, log, err, "quote size")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{"quote": quote})
}
