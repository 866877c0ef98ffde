package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sellerpulse/auth-backend/internal/apperrors"
	"github.com/sellerpulse/auth-backend/internal/core/domain"
	portssvc "github.com/sellerpulse/auth-backend/internal/core/ports/services"
	"github.com/sellerpulse/auth-backend/internal/platform/config"
	"github.com/sellerpulse/auth-backend/internal/utils"
)

// tokenService implements the TokenSvcFacade. Access and refresh tokens use
// distinct secrets from config, so presenting a token against the wrong key
// class fails as a bad signature.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new JWT refresh token for the given user.
// Refresh tokens carry only the user ID.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	refreshToken, err := utils.GenerateJWT(user.UserID, "", s.cfg.JWTRefreshSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return refreshToken, expiryTime, nil
}

func (s *tokenService) VerifyAccessToken(ctx context.Context, tokenString string) (*portssvc.TokenClaims, error) {
	return s.verify(tokenString, s.cfg.JWTSecret)
}

func (s *tokenService) VerifyRefreshToken(ctx context.Context, tokenString string) (*portssvc.TokenClaims, error) {
	return s.verify(tokenString, s.cfg.JWTRefreshSecret)
}

func (s *tokenService) verify(tokenString, secret string) (*portssvc.TokenClaims, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		// Malformed tokens, bad signatures and wrong-key-class tokens all
		// land here.
		return nil, apperrors.ErrTokenInvalid
	}
	return toTokenClaims(claims), nil
}

// DecodeToken extracts claims without validating signature or expiry.
func (s *tokenService) DecodeToken(ctx context.Context, tokenString string) (*portssvc.TokenClaims, error) {
	claims, err := utils.DecodeJWTUnverified(tokenString)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}
	return toTokenClaims(claims), nil
}

func toTokenClaims(claims *utils.AuthClaims) *portssvc.TokenClaims {
	out := &portssvc.TokenClaims{
		UserID: claims.Subject,
		Role:   domain.Role(claims.Role),
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out
}
