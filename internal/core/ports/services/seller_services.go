package services

import "context"

// SellerAuthSvcFacade manages the Amazon Selling Partner OAuth linkage: it
// builds authorize URLs, exchanges callback codes for token pairs and
// refreshes stored credentials.
type SellerAuthSvcFacade interface {
	// AuthorizationURL builds the Seller Central consent URL for a region
	// (na, eu, fe, in). Unknown regions fail with a validation error.
	AuthorizationURL(region string) (string, error)

	// HandleCallback exchanges the authorization code and upserts the seller
	// credential record keyed by sellerID.
	HandleCallback(ctx context.Context, code, sellerID, marketplaceID string) error

	// RefreshSellerToken exchanges the stored refresh token for a new access
	// token, updating expiry in place. The refresh token itself is not
	// rotated; Amazon's refresh grant does not return one.
	RefreshSellerToken(ctx context.Context, sellerID string) error
}
