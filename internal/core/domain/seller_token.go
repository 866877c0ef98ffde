package domain

import "time"

// SellerToken is the Amazon seller credential record written by the OAuth
// callback flow. It is keyed by the external seller identifier and kept
// decoupled from User until explicitly associated.
type SellerToken struct {
	SellerID       string    `json:"sellerId"`
	MarketplaceID  string    `json:"marketplaceId"`
	RefreshToken   string    `json:"-"`
	AccessToken    string    `json:"-"`
	TokenExpiresAt time.Time `json:"tokenExpiresAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// IsTokenExpired reports whether the stored access token has passed its expiry.
func (t *SellerToken) IsTokenExpired(now time.Time) bool {
	return now.After(t.TokenExpiresAt)
}
