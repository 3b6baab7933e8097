package controller

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lensfolio/printshop-backend/internal/app/service"
	apperrors "github.com/lensfolio/printshop-backend/internal/errors"
	"github.com/lensfolio/printshop-backend/internal/middleware"
	"github.com/lensfolio/printshop-backend/internal/seed"
)

// maxRateCardUpload caps multipart rate-card uploads.
const maxRateCardUpload = 10 << 20

var rateCardExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".xlsx": true,
}

type AdminController struct {
	authService        service.AdminAuthService
	maintenanceService service.MaintenanceService
}

func NewAdminController(authService service.AdminAuthService, maintenanceService service.MaintenanceService) *AdminController {
	return &AdminController{
		authService:        authService,
		maintenanceService: maintenanceService,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/v1/admin/login
func (ctrl *AdminController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, log, err)
		return
	}

	token, err := ctrl.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid username or password")
			return
		}
		log.Error("Failed to log in", err)
		apperrors.InternalError(c, err)
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{
		"token":      token.Token,
		"expires_at": token.ExpiresAt,
	})
}

// Logout revokes the presented token when a revocation store is configured
// POST /api/v1/admin/logout
func (ctrl *AdminController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	claims, ok := middleware.GetAdminClaims(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), claims); err != nil {
		log.Error("Failed to revoke token", err)
		apperrors.InternalError(c, err)
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Audit lists products whose sub-option slots disagree with their type
// GET /api/v1/admin/catalog/audit
func (ctrl *AdminController) Audit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	violations, err := ctrl.maintenanceService.Audit()
	if err != nil {
		respondServiceError(c, log, err, "audit catalog")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{
		"violations": violations,
		"count":      len(violations),
	})
}

// Deduplicate POST /api/v1/admin/catalog/dedupe
func (ctrl *AdminController) Deduplicate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	removed, err := ctrl.maintenanceService.Deduplicate()
	if err != nil {
		respondServiceError(c, log, err, "deduplicate catalog")
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{"removed": removed})
}

// Import applies an uploaded rate card (multipart field "file"), or the
// configured data directory when no file is sent
// POST /api/v1/admin/catalog/import
func (ctrl *AdminController) Import(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRateCardUpload)
	header, err := c.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid upload: "+err.Error())
		return
	}

	var report *seed.Report
	if header == nil {
		report, err = ctrl.maintenanceService.ImportDir()
	} else {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !rateCardExtensions[ext] {
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Rate cards must be .yaml, .yml or .xlsx")
			return
		}

		path, cleanup, saveErr := saveUpload(c, ext)
		if saveErr != nil {
			log.Error("Failed to store uploaded rate card", saveErr)
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, saveErr.Error())
			return
		}
		defer cleanup()

		report, err = ctrl.maintenanceService.ImportFile(path)
	}

	if err != nil {
		var validation *service.ValidationError
		if errors.As(err, &validation) {
			respondServiceError(c, log, err, "import rate card")
			return
		}
		log.Error("Rate card import failed", err)
		apperrors.RespondWithError(c, http.StatusUnprocessableEntity, apperrors.InternalSeedError, err.Error())
		return
	}

	apperrors.Success(c, http.StatusOK, gin.H{"report": report})
}

// saveUpload copies the multipart file to a temp file with the original
// extension, which the loader dispatches on.
func saveUpload(c *gin.Context, ext string) (string, func(), error) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "ratecard-*"+ext)
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return tmp.Name(), cleanup, nil
}
