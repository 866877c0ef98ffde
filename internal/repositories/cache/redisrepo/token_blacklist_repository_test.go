package redisrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerpulse/auth-backend/internal/core/domain"
	portsrepo "github.com/sellerpulse/auth-backend/internal/core/ports/repositories"
	"github.com/sellerpulse/auth-backend/internal/repositories/cache/redisrepo"
)

func setupBlacklist(t *testing.T) (*miniredis.Miniredis, portsrepo.TokenBlacklistRepositoryFacade) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, redisrepo.NewTokenBlacklistRepository(client)
}

func TestRevokeToken_MarksTokenRevoked(t *testing.T) {
	ctx := context.Background()
	mr, repo := setupBlacklist(t)

	entry := domain.BlacklistedToken{
		Token:     "some.jwt.token",
		Type:      domain.TokenTypeAccess,
		ExpiresAt: time.Now().Add(time.Hour),
		UserID:    "user-1",
	}
	require.NoError(t, repo.RevokeToken(ctx, entry))

	revoked, err := repo.IsTokenRevoked(ctx, "some.jwt.token")
	require.NoError(t, err)
	assert.True(t, revoked)

	// TTL tracks the token's remaining lifetime.
	ttl := mr.TTL("blacklist:some.jwt.token")
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestRevokeToken_Idempotent(t *testing.T) {
	ctx := context.Background()
	_, repo := setupBlacklist(t)

	entry := domain.BlacklistedToken{
		Token:     "some.jwt.token",
		Type:      domain.TokenTypeRefresh,
		ExpiresAt: time.Now().Add(time.Hour),
		UserID:    "user-1",
	}
	require.NoError(t, repo.RevokeToken(ctx, entry))
	require.NoError(t, repo.RevokeToken(ctx, entry))

	revoked, err := repo.IsTokenRevoked(ctx, "some.jwt.token")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevokeToken_AlreadyExpiredIsNoop(t *testing.T) {
	ctx := context.Background()
	mr, repo := setupBlacklist(t)

	entry := domain.BlacklistedToken{
		Token:     "expired.jwt.token",
		Type:      domain.TokenTypeAccess,
		ExpiresAt: time.Now().Add(-time.Minute),
		UserID:    "user-1",
	}
	require.NoError(t, repo.RevokeToken(ctx, entry))

	revoked, err := repo.IsTokenRevoked(ctx, "expired.jwt.token")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, mr.Keys())
}

func TestIsTokenRevoked_UnknownToken(t *testing.T) {
	ctx := context.Background()
	_, repo := setupBlacklist(t)

	revoked, err := repo.IsTokenRevoked(ctx, "never.seen.token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocation_ExpiresWithTokenLifetime(t *testing.T) {
	ctx := context.Background()
	mr, repo := setupBlacklist(t)

	entry := domain.BlacklistedToken{
		Token:     "short.jwt.token",
		Type:      domain.TokenTypeAccess,
		ExpiresAt: time.Now().Add(time.Minute),
		UserID:    "user-1",
	}
	require.NoError(t, repo.RevokeToken(ctx, entry))

	mr.FastForward(2 * time.Minute)

	revoked, err := repo.IsTokenRevoked(ctx, "short.jwt.token")
	require.NoError(t, err)
	assert.False(t, revoked)
}
