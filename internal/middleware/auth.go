package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sellerpulse/auth-backend/internal/apperrors"
	portsrepo "github.com/sellerpulse/auth-backend/internal/core/ports/repositories"
	portssvc "github.com/sellerpulse/auth-backend/internal/core/ports/services"
	"github.com/sellerpulse/auth-backend/internal/dto"
)

// AuthMiddleware creates a Gin middleware handler that validates bearer
// access tokens. Order matters: the signature and expiry are verified first,
// then the revocation registry is consulted, so a revoked token is rejected
// even while its signature still verifies.
func AuthMiddleware(tokenService portssvc.TokenSvcFacade, blacklistRepo portsrepo.TokenBlacklistRepositoryFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Authorization header required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Authorization header format must be Bearer {token}"))
			return
		}
		tokenString := parts[1]

		claims, err := tokenService.VerifyAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				msg = "Token has expired"
			}
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(msg))
			return
		}
		if claims.UserID == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Invalid token claims"))
			return
		}

		revoked, err := blacklistRepo.IsTokenRevoked(c.Request.Context(), tokenString)
		if err != nil {
			logger.Error("Failed to check token revocation", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("Failed to verify token"))
			return
		}
		if revoked {
			logger.Warn("Rejected revoked token", slog.String("user_id", claims.UserID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Token has been revoked"))
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, userRoleKey, string(claims.Role))

		enrichedLogger := logger.With(slog.String("user_id", claims.UserID))
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
