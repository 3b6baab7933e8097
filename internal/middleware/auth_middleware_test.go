package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lensfolio/printshop-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret-for-middleware"

// stubValidator checks signatures like the real service and revokes by ID.
type stubValidator struct {
	revoked map[string]bool
	err     error
}

func (v *stubValidator) ValidateToken(_ context.Context, token string) (*util.Claims, error) {
	if v.err != nil {
		return nil, v.err
	}
	claims, err := util.ValidateToken(token, testJWTSecret)
	if err != nil {
		return nil, err
	}
	if v.revoked[claims.ID] {
		return nil, util.ErrRevokedToken
	}
	return claims, nil
}

func setupMiddlewareTest(validator *stubValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	auth := NewAuthMiddleware(validator)
	router.GET("/admin", auth.RequireAdmin(), func(c *gin.Context) {
		claims, ok := GetAdminClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	return router
}

func generateTestToken(t *testing.T, expiry time.Duration) *util.AdminToken {
	token, err := util.GenerateAdminToken("admin", testJWTSecret, expiry)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_RequireAdmin_Success(t *testing.T) {
	router := setupMiddlewareTest(&stubValidator{})
	token := generateTestToken(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
}

func TestAuthMiddleware_RequireAdmin_IgnoresQueryToken(t *testing.T) {
	router := setupMiddlewareTest(&stubValidator{})
	token := generateTestToken(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/admin?token="+token.Token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"AUTH_UNAUTHORIZED"`)
}

func TestAuthMiddleware_RequireAdmin_Rejects(t *testing.T) {
	valid := generateTestToken(t, time.Hour)
	expired := generateTestToken(t, -time.Minute)

	tests := []struct {
		name      string
		header    string
		validator *stubValidator
		status    int
		code      string
	}{
		{
			name:      "Missing header",
			validator: &stubValidator{},
			status:    http.StatusUnauthorized,
			code:      "AUTH_UNAUTHORIZED",
		},
		{
			name:      "Wrong scheme",
			header:    "Basic " + valid.Token,
			validator: &stubValidator{},
			status:    http.StatusUnauthorized,
			code:      "AUTH_TOKEN_INVALID",
		},
		{
			name:      "Garbage token",
			header:    "Bearer not-a-jwt",
			validator: &stubValidator{},
			status:    http.StatusUnauthorized,
			code:      "AUTH_TOKEN_INVALID",
		},
		{
			name:      "Expired token",
			header:    "Bearer " + expired.Token,
			validator: &stubValidator{},
			status:    http.StatusUnauthorized,
			code:      "AUTH_TOKEN_EXPIRED",
		},
		{
			name:      "Revoked token",
			header:    "Bearer " + valid.Token,
			validator: &stubValidator{revoked: map[string]bool{valid.TokenID: true}},
			status:    http.StatusUnauthorized,
			code:      "AUTH_TOKEN_REVOKED",
		},
		{
			name:      "Revocation store down",
			header:    "Bearer " + valid.Token,
			validator: &stubValidator{err: errors.New("redis: i/o timeout")},
			status:    http.StatusInternalServerError,
			code:      "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupMiddlewareTest(tt.validator)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}
