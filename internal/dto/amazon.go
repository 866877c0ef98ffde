package dto

// AuthURLQuery selects the Seller Central region for the authorize URL.
// Region names follow Amazon's SP-API region shorthand.
type AuthURLQuery struct {
	Region string `form:"region,default=na" binding:"omitempty,spregion"`
}

// AuthURLData is the auth-url response body. The URL sits at the top level
// so frontend clients can read authUrl directly.
type AuthURLData struct {
	AuthURL string `json:"authUrl"`
}

// CallbackQuery is the query string Amazon appends on the OAuth callback.
type CallbackQuery struct {
	Code             string `form:"code" binding:"required"`
	SellingPartnerID string `form:"selling_partner_id" binding:"required"`
	MarketplaceID    string `form:"marketplace_id" binding:"required"`
}
