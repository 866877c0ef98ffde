package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerpulse/auth-backend/internal/apperrors"
	"github.com/sellerpulse/auth-backend/internal/core/domain"
	"github.com/sellerpulse/auth-backend/internal/core/services"
	"github.com/sellerpulse/auth-backend/internal/platform/config"
)

func tokenTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:                  "access-secret-for-tests",
		JWTRefreshSecret:           "refresh-secret-for-tests",
		JWTIssuer:                  "auth-backend-test",
		JWTExpiryDuration:          time.Hour,
		RefreshTokenExpiryDuration: 168 * time.Hour,
	}
}

func testUser() *domain.User {
	return &domain.User{UserID: "user-123", Role: domain.RoleUser}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := services.NewTokenService(tokenTestConfig())

	token, expiry, err := svc.GenerateAccessToken(ctx, testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := svc.VerifyAccessToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.WithinDuration(t, expiry, claims.ExpiresAt, time.Second)
}

func TestRefreshToken_RoundTripWithoutRole(t *testing.T) {
	ctx := context.Background()
	svc := services.NewTokenService(tokenTestConfig())

	token, _, err := svc.GenerateRefreshToken(ctx, testUser())
	require.NoError(t, err)

	claims, err := svc.VerifyRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Empty(t, claims.Role)
}

func TestVerify_RefusesCrossKeyClass(t *testing.T) {
	ctx := context.Background()
	svc := services.NewTokenService(tokenTestConfig())

	accessToken, _, err := svc.GenerateAccessToken(ctx, testUser())
	require.NoError(t, err)
	refreshToken, _, err := svc.GenerateRefreshToken(ctx, testUser())
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(ctx, accessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = svc.VerifyAccessToken(ctx, refreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	ctx := context.Background()
	cfg := tokenTestConfig()
	cfg.JWTExpiryDuration = -time.Minute
	svc := services.NewTokenService(cfg)

	token, _, err := svc.GenerateAccessToken(ctx, testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	ctx := context.Background()
	svc := services.NewTokenService(tokenTestConfig())

	_, err := svc.VerifyAccessToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestDecodeToken_WorksOnExpiredToken(t *testing.T) {
	ctx := context.Background()
	cfg := tokenTestConfig()
	cfg.JWTExpiryDuration = -time.Minute
	svc := services.NewTokenService(cfg)

	token, _, err := svc.GenerateAccessToken(ctx, testUser())
	require.NoError(t, err)

	claims, err := svc.DecodeToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.True(t, claims.ExpiresAt.Before(time.Now()))
}
