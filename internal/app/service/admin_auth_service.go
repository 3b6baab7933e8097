package service

import (
	"context"
	"errors"
	"time"

	"github.com/lensfolio/printshop-backend/config"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"github.com/lensfolio/printshop-backend/pkg/util"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// TokenRevoker persists logged-out token IDs. Without one, logout only
// succeeds client-side and tokens stay valid until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AdminAuthService interface {
	Login(username, password string) (*util.AdminToken, error)
	Logout(ctx context.Context, claims *util.Claims) error
	ValidateToken(ctx context.Context, token string) (*util.Claims, error)
}

type adminAuthService struct {
	cfg     config.AdminConfig
	revoker TokenRevoker
}

func NewAdminAuthService(cfg config.AdminConfig, revoker TokenRevoker) AdminAuthService {
	return &adminAuthService{cfg: cfg, revoker: revoker}
}

func (s *adminAuthService) Login(username, password string) (*util.AdminToken, error) {
	if !util.VerifyCredentials(s.cfg.Username, s.cfg.PasswordHash, username, password) {
		logger.Warn("Admin login failed", map[string]interface{}{
			"username": username,
		})
		return nil, ErrInvalidCredentials
	}

	token, err := util.GenerateAdminToken(username, s.cfg.JWTSecret, s.cfg.TokenExpiry)
	if err != nil {
		logger.Error("Failed to issue admin token", err)
		return nil, err
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"username":   username,
		"expires_at": token.ExpiresAt,
	})
	return token, nil
}

func (s *adminAuthService) Logout(ctx context.Context, claims *util.Claims) error {
	if s.revoker == nil || claims == nil || claims.ID == "" {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}

	logger.Info("Admin logged out", map[string]interface{}{
		"username": claims.Username,
	})
	return nil
}

func (s *adminAuthService) ValidateToken(ctx context.Context, token string) (*util.Claims, error) {
	claims, err := util.ValidateToken(token, s.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	if claims.Role != util.RoleAdmin {
		return nil, util.ErrInvalidToken
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, util.ErrRevokedToken
		}
	}
	return claims, nil
}
