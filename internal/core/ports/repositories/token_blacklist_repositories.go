package repositories

import (
	"context"

	"github.com/sellerpulse/auth-backend/internal/core/domain"
)

// TokenBlacklistRepositoryFacade is the revocation registry. Entries expire
// on their own once past the token's natural expiry; no sweeping is required
// of callers.
type TokenBlacklistRepositoryFacade interface {
	// RevokeToken inserts a revocation record. The insert is idempotent:
	// revoking an already-revoked token is not an error.
	RevokeToken(ctx context.Context, entry domain.BlacklistedToken) error

	// IsTokenRevoked reports membership. Any token listed here must be
	// rejected even when its signature still verifies.
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}
