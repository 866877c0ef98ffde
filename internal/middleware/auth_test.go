package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerpulse/auth-backend/internal/core/domain"
	"github.com/sellerpulse/auth-backend/internal/core/services"
	"github.com/sellerpulse/auth-backend/internal/dto"
	"github.com/sellerpulse/auth-backend/internal/middleware"
	"github.com/sellerpulse/auth-backend/internal/platform/config"
	"github.com/sellerpulse/auth-backend/internal/repositories/cache/redisrepo"
)

type authMiddlewareFixture struct {
	router       *gin.Engine
	tokenService func(expiry time.Duration) string
	revoke       func(token string, exp time.Time)
}

func setupAuthMiddleware(t *testing.T) *authMiddlewareFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:                  "access-secret",
		JWTRefreshSecret:           "refresh-secret",
		JWTIssuer:                  "auth-backend-test",
		JWTExpiryDuration:          time.Hour,
		RefreshTokenExpiryDuration: 168 * time.Hour,
	}
	tokenSvc := services.NewTokenService(cfg)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	blacklist := redisrepo.NewTokenBlacklistRepository(client)

	router := gin.New()
	router.GET("/protected", middleware.AuthMiddleware(tokenSvc, blacklist), func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		require.True(t, ok)
		role, _ := middleware.GetUserRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID, "role": role})
	})

	return &authMiddlewareFixture{
		router: router,
		tokenService: func(expiry time.Duration) string {
			issueCfg := *cfg
			issueCfg.JWTExpiryDuration = expiry
			token, _, err := services.NewTokenService(&issueCfg).GenerateAccessToken(
				context.Background(), &domain.User{UserID: "user-1", Role: domain.RoleUser})
			require.NoError(t, err)
			return token
		},
		revoke: func(token string, exp time.Time) {
			err := blacklist.RevokeToken(context.Background(), domain.BlacklistedToken{
				Token:     token,
				Type:      domain.TokenTypeAccess,
				ExpiresAt: exp,
				UserID:    "user-1",
			})
			require.NoError(t, err)
		},
	}
}

func doProtectedRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	fx := setupAuthMiddleware(t)
	token := fx.tokenService(time.Hour)

	w := doProtectedRequest(fx.router, "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body["userID"])
	assert.Equal(t, "user", body["role"])
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	fx := setupAuthMiddleware(t)

	w := doProtectedRequest(fx.router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	fx := setupAuthMiddleware(t)

	w := doProtectedRequest(fx.router, "Token abc")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Authorization header format must be Bearer {token}", resp.Message)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	fx := setupAuthMiddleware(t)
	token := fx.tokenService(-time.Minute)

	w := doProtectedRequest(fx.router, "Bearer "+token)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Token has expired", resp.Message)
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	fx := setupAuthMiddleware(t)
	token := fx.tokenService(time.Hour)

	// The token is cryptographically valid but sits in the revocation
	// registry, so it must be rejected.
	w := doProtectedRequest(fx.router, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	fx.revoke(token, time.Now().Add(time.Hour))

	w = doProtectedRequest(fx.router, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Token has been revoked", resp.Message)
}
