package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/sellerpulse/auth-backend/internal/apperrors"
	"github.com/sellerpulse/auth-backend/internal/core/domain"
	portsrepo "github.com/sellerpulse/auth-backend/internal/core/ports/repositories"
	portssvc "github.com/sellerpulse/auth-backend/internal/core/ports/services"
	"github.com/sellerpulse/auth-backend/internal/platform/config"
)

// sellerCentralURLs maps SP-API region shorthands to the Seller Central host
// the merchant must consent on.
var sellerCentralURLs = map[string]string{
	"na": "https://sellercentral.amazon.com",
	"eu": "https://sellercentral-europe.amazon.com",
	"fe": "https://sellercentral.amazon.com.au",
	"in": "https://sellercentral.amazon.in",
}

const authorizeConsentPath = "/apps/authorize/consent"

// sellerTokenService implements SellerAuthSvcFacade on top of Amazon's
// Login-with-Amazon token endpoint.
type sellerTokenService struct {
	cfg          *config.Config
	sellerRepo   portsrepo.SellerTokenRepositoryFacade
	oauth2Config *oauth2.Config
}

// NewSellerTokenService creates a new instance of sellerTokenService.
func NewSellerTokenService(cfg *config.Config, sellerRepo portsrepo.SellerTokenRepositoryFacade) portssvc.SellerAuthSvcFacade {
	return &sellerTokenService{
		cfg:        cfg,
		sellerRepo: sellerRepo,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.AmazonClientID,
			ClientSecret: cfg.AmazonClientSecret,
			RedirectURL:  cfg.AmazonRedirectURI,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.AmazonTokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// AuthorizationURL builds the Seller Central consent URL for a region.
func (s *sellerTokenService) AuthorizationURL(region string) (string, error) {
	base, ok := sellerCentralURLs[region]
	if !ok {
		return "", apperrors.NewBadRequestError(fmt.Sprintf("invalid region: %s", region))
	}
	return fmt.Sprintf("%s%s?application_id=%s&version=beta", base, authorizeConsentPath, s.cfg.AmazonClientID), nil
}

// HandleCallback exchanges the authorization code and upserts the seller
// credential record. Calling it twice for the same seller updates the single
// existing record.
func (s *sellerTokenService) HandleCallback(ctx context.Context, code, sellerID, marketplaceID string) error {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return apperrors.NewDependencyError("failed to exchange authorization code with Amazon", err)
	}

	now := time.Now()
	record := domain.SellerToken{
		SellerID:       sellerID,
		MarketplaceID:  marketplaceID,
		RefreshToken:   token.RefreshToken,
		AccessToken:    token.AccessToken,
		TokenExpiresAt: token.Expiry,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.sellerRepo.UpsertSellerToken(ctx, record); err != nil {
		return fmt.Errorf("failed to upsert seller token for %s: %w", sellerID, err)
	}
	return nil
}

// RefreshSellerToken exchanges the stored refresh token for a new access
// token and updates the record's expiry in place. The stored refresh token is
// not rotated: Amazon's refresh grant does not return one.
func (s *sellerTokenService) RefreshSellerToken(ctx context.Context, sellerID string) error {
	record, err := s.sellerRepo.FindBySellerID(ctx, sellerID)
	if err != nil {
		return err
	}

	// Seed the token source with an already-expired token so it performs the
	// refresh grant immediately.
	seed := &oauth2.Token{
		RefreshToken: record.RefreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	}
	refreshed, err := s.oauth2Config.TokenSource(ctx, seed).Token()
	if err != nil {
		return apperrors.NewDependencyError("failed to refresh Amazon token", err)
	}

	record.AccessToken = refreshed.AccessToken
	record.TokenExpiresAt = refreshed.Expiry
	record.UpdatedAt = time.Now()
	if err := s.sellerRepo.UpsertSellerToken(ctx, *record); err != nil {
		return fmt.Errorf("failed to update seller token for %s: %w", sellerID, err)
	}
	return nil
}
