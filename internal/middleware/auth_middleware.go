package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lensfolio/printshop-backend/internal/errors"
	"github.com/lensfolio/printshop-backend/pkg/util"
)

const AdminClaimsKey = "admin_claims"

// TokenValidator verifies an admin session token, including revocation.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*util.Claims, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAdmin gates a route behind a valid admin bearer token. Tokens are
// only read from the Authorization header.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}
		token := parts[1]

		claims, err := m.validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			switch {
			case stderrors.Is(err, util.ErrExpiredToken):
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Token has expired")
			case stderrors.Is(err, util.ErrRevokedToken):
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenRevoked, "Token has been revoked")
			case stderrors.Is(err, util.ErrInvalidToken):
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid token")
			default:
				errors.InternalError(c, err)
			}
			c.Abort()
			return
		}

		c.Set(AdminClaimsKey, claims)
		log.Debug("Admin authenticated", map[string]interface{}{
			"username": claims.Username,
		})
		c.Next()
	}
}

// GetAdminClaims extracts the admin session set by RequireAdmin.
func GetAdminClaims(c *gin.Context) (*util.Claims, bool) {
	v, exists := c.Get(AdminClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*util.Claims)
	return claims, ok
}
