// Package redisrepo implements the token revocation registry on redis.
// Entries carry a TTL equal to the token's remaining natural lifetime, so
// expired revocations disappear on their own; no sweeping runs anywhere.
package redisrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sellerpulse/auth-backend/internal/core/domain"
	portsrepo "github.com/sellerpulse/auth-backend/internal/core/ports/repositories"
)

const blacklistKeyPrefix = "blacklist"

// TokenBlacklistRepository is the redis-backed revocation registry.
type TokenBlacklistRepository struct {
	client *redis.Client
}

func NewTokenBlacklistRepository(client *redis.Client) portsrepo.TokenBlacklistRepositoryFacade {
	return &TokenBlacklistRepository{client: client}
}

var _ portsrepo.TokenBlacklistRepositoryFacade = (*TokenBlacklistRepository)(nil)

func (r *TokenBlacklistRepository) key(token string) string {
	return blacklistKeyPrefix + ":" + token
}

// RevokeToken inserts the revocation record keyed by the token string.
// SETNX makes the insert idempotent: a duplicate means the token was already
// revoked, which callers treat as success.
func (r *TokenBlacklistRepository) RevokeToken(ctx context.Context, entry domain.BlacklistedToken) error {
	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		// The token is already past its natural expiry; signature
		// verification rejects it everywhere. Nothing to record.
		return nil
	}

	value := string(entry.Type) + ":" + entry.UserID
	if err := r.client.SetNX(ctx, r.key(entry.Token), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsTokenRevoked reports membership in the registry.
func (r *TokenBlacklistRepository) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
