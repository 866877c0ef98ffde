package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sellerpulse/auth-backend/internal/core/domain"
)

func TestRegisterFailedLogin_LocksAtThreshold(t *testing.T) {
	now := time.Now()
	user := domain.User{}

	for i := 0; i < domain.MaxLoginAttempts-1; i++ {
		user.RegisterFailedLogin(now)
	}
	assert.False(t, user.IsLocked)
	assert.Equal(t, domain.MaxLoginAttempts-1, user.LoginAttempts)

	user.RegisterFailedLogin(now)
	assert.True(t, user.IsLocked)
	if assert.NotNil(t, user.LockUntil) {
		assert.Equal(t, now.Add(domain.LockDuration), *user.LockUntil)
	}
}

func TestIsAccountLocked_WhileLockActive(t *testing.T) {
	now := time.Now()
	until := now.Add(10 * time.Minute)
	user := domain.User{IsLocked: true, LockUntil: &until, LoginAttempts: 5}

	locked, recovered := user.IsAccountLocked(now)
	assert.True(t, locked)
	assert.False(t, recovered)
	assert.True(t, user.IsLocked)
}

func TestIsAccountLocked_LazyRecoveryAfterExpiry(t *testing.T) {
	now := time.Now()
	until := now.Add(-time.Second)
	user := domain.User{IsLocked: true, LockUntil: &until, LoginAttempts: 5}

	locked, recovered := user.IsAccountLocked(now)
	assert.False(t, locked)
	assert.True(t, recovered)
	assert.False(t, user.IsLocked)
	assert.Zero(t, user.LoginAttempts)
	assert.Nil(t, user.LockUntil)
}

func TestResetLoginAttempts(t *testing.T) {
	now := time.Now()
	until := now.Add(time.Minute)
	user := domain.User{IsLocked: true, LockUntil: &until, LoginAttempts: 3}

	user.ResetLoginAttempts()
	assert.False(t, user.IsLocked)
	assert.Zero(t, user.LoginAttempts)
	assert.Nil(t, user.LockUntil)
}

func TestLockRemainingMinutes_RoundsUp(t *testing.T) {
	now := time.Now()
	until := now.Add(29*time.Minute + time.Second)
	user := domain.User{IsLocked: true, LockUntil: &until}

	assert.Equal(t, 30, user.LockRemainingMinutes(now))

	past := now.Add(-time.Minute)
	user.LockUntil = &past
	assert.Zero(t, user.LockRemainingMinutes(now))
}

func TestCanLogin(t *testing.T) {
	now := time.Now()
	user := domain.User{IsActive: true}
	assert.True(t, user.CanLogin(now))

	user.IsActive = false
	assert.False(t, user.CanLogin(now))

	until := now.Add(time.Minute)
	user = domain.User{IsActive: true, IsLocked: true, LockUntil: &until}
	assert.False(t, user.CanLogin(now))
}

func TestRemoveAmazonAccount(t *testing.T) {
	user := domain.User{}
	user.AddAmazonAccount(domain.AmazonAccount{MarketplaceIDs: []string{"ATVPDKIKX0DER"}})
	user.AddAmazonAccount(domain.AmazonAccount{MarketplaceIDs: []string{"A1F83G8C2ARO7P"}})

	user.RemoveAmazonAccount("ATVPDKIKX0DER")
	assert.Len(t, user.AmazonAccounts, 1)
	assert.Equal(t, []string{"A1F83G8C2ARO7P"}, user.AmazonAccounts[0].MarketplaceIDs)
}
