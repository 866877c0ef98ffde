package domain

import (
	"math"
	"time"
)

// Role distinguishes regular users from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

const (
	// MaxLoginAttempts is the number of consecutive failed password checks
	// after which the account is locked.
	MaxLoginAttempts = 5
	// LockDuration is how long a locked account stays locked.
	LockDuration = 30 * time.Minute
)

// OTPSlot is an embedded one-time code record owned by the User aggregate.
// A nil slot means no code is outstanding for that purpose.
type OTPSlot struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
	Attempts  int       `json:"attempts"`
}

// AmazonAccount is a linked Amazon seller credential owned by the User
// aggregate. It is a value type, not a separate entity, so the user row keeps
// single-document read-modify-write semantics.
type AmazonAccount struct {
	RefreshToken   string    `json:"refreshToken"`
	AccessToken    string    `json:"accessToken"`
	TokenType      string    `json:"tokenType"`
	ExpiresIn      int       `json:"expiresIn"`
	MarketplaceIDs []string  `json:"marketplaceIds"`
	CreatedAt      time.Time `json:"createdAt"`
}

// User is the identity and credential aggregate.
type User struct {
	UserID          string `json:"userID"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	PasswordHash    string `json:"-"` // Never expose the hash in JSON responses
	Role            Role   `json:"role"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	IsActive        bool   `json:"isActive"`

	VerificationOTP  *OTPSlot `json:"-"`
	PasswordResetOTP *OTPSlot `json:"-"`

	// Latest issued token pair. Informational only; revocation is handled by
	// the blacklist, not by comparing against these fields.
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`

	LoginAttempts int        `json:"-"`
	IsLocked      bool       `json:"-"`
	LockUntil     *time.Time `json:"-"`

	AmazonAccounts []AmazonAccount `json:"amazonAccounts,omitempty"`

	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	DeactivatedAt *time.Time `json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// RegisterFailedLogin records a failed password check and locks the account
// once the attempt budget is exhausted.
func (u *User) RegisterFailedLogin(now time.Time) {
	u.LoginAttempts++
	if u.LoginAttempts >= MaxLoginAttempts {
		u.IsLocked = true
		until := now.Add(LockDuration)
		u.LockUntil = &until
	}
}

// ResetLoginAttempts clears the lockout state. Called unconditionally on a
// successful login, even when the account was never locked.
func (u *User) ResetLoginAttempts() {
	u.LoginAttempts = 0
	u.IsLocked = false
	u.LockUntil = nil
}

// IsAccountLocked reports whether the account is currently locked. Lock
// expiry is recovered lazily: when LockUntil has passed the state is cleared
// in place and recovered=true is returned so the caller can persist the
// change. There is no background sweep.
func (u *User) IsAccountLocked(now time.Time) (locked bool, recovered bool) {
	if !u.IsLocked {
		return false, false
	}
	if u.LockUntil != nil && now.After(*u.LockUntil) {
		u.ResetLoginAttempts()
		return false, true
	}
	return true, false
}

// LockRemainingMinutes returns the minutes left until the lock expires,
// rounded up. Zero when the account is not locked.
func (u *User) LockRemainingMinutes(now time.Time) int {
	if u.LockUntil == nil {
		return 0
	}
	remaining := u.LockUntil.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Minutes()))
}

// CanLogin reports whether the account is active and not locked.
func (u *User) CanLogin(now time.Time) bool {
	locked, _ := u.IsAccountLocked(now)
	return u.IsActive && !locked
}

// AddAmazonAccount appends a linked seller credential.
func (u *User) AddAmazonAccount(account AmazonAccount) {
	u.AmazonAccounts = append(u.AmazonAccounts, account)
}

// RemoveAmazonAccount drops every linked credential covering marketplaceID.
func (u *User) RemoveAmazonAccount(marketplaceID string) {
	kept := u.AmazonAccounts[:0]
	for _, account := range u.AmazonAccounts {
		if !containsMarketplace(account.MarketplaceIDs, marketplaceID) {
			kept = append(kept, account)
		}
	}
	u.AmazonAccounts = kept
}

func containsMarketplace(ids []string, marketplaceID string) bool {
	for _, id := range ids {
		if id == marketplaceID {
			return true
		}
	}
	return false
}
