package services

import (
	"context"
	"time"

	"github.com/sellerpulse/auth-backend/internal/core/domain"
)

// TokenClaims is the decoded content of an issued token. Role is empty for
// refresh tokens.
type TokenClaims struct {
	UserID    string
	Role      domain.Role
	ExpiresAt time.Time
}

// TokenSvcFacade defines the interface for token management services.
// Access and refresh tokens are signed with distinct secrets and must never
// be cross-validated.
type TokenSvcFacade interface {
	// GenerateAccessToken mints a signed access token carrying {id, role}.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken mints a signed refresh token carrying {id}.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// VerifyAccessToken validates signature and expiry against the access
	// secret. Fails with apperrors.ErrTokenExpired or apperrors.ErrTokenInvalid.
	VerifyAccessToken(ctx context.Context, tokenString string) (*TokenClaims, error)

	// VerifyRefreshToken validates signature and expiry against the refresh
	// secret.
	VerifyRefreshToken(ctx context.Context, tokenString string) (*TokenClaims, error)

	// DecodeToken parses claims without verifying the signature or expiry.
	// Logout uses this so revocation still works on a just-expired token.
	DecodeToken(ctx context.Context, tokenString string) (*TokenClaims, error)
}
