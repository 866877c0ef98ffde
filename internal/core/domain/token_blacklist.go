package domain

import "time"

// TokenType classifies a blacklisted token.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// BlacklistedToken is a revocation record. Presence of the token string in
// the registry is the authoritative negative signal: a token listed here is
// invalid regardless of its signature.
type BlacklistedToken struct {
	Token     string    `json:"token"`
	Type      TokenType `json:"type"`
	ExpiresAt time.Time `json:"expiresAt"` // copied from the token's own exp claim
	UserID    string    `json:"userId"`
}
