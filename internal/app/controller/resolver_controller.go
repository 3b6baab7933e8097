package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lensfolio/printshop-backend/internal/app/service"
	apperrors "github.com/lensfolio/printshop-backend/internal/errors"
	"github.com/lensfolio/printshop-backend/internal/middleware"
)

type ResolverController struct {
	resolverService service.ResolverService
}

func NewResolverController(resolverService service.ResolverService) *ResolverController {
	return &ResolverController{resolverService: resolverService}
}

// Resolve walks the type → level 1 → level 2 → sizes selection one step
// GET /api/v1/resolve?product_type_id=&sub_option_1_id=&sub_option_2_id=
func (ctrl *ResolverController) Resolve(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.ResolveRequest
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

	res, err := ctrl.resolverService.Resolve(req)
	if err != nil {
		respondServiceError(c, log, err, "resolve selection")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{"resolution": res})
}
