package repositories

import (
	"context"

	"github.com/sellerpulse/auth-backend/internal/core/domain"
)

// SellerTokenRepositoryFacade persists Amazon seller credential records.
type SellerTokenRepositoryFacade interface {
	// FindBySellerID retrieves the credential record for a seller, or
	// apperrors.ErrNotFound when none exists.
	FindBySellerID(ctx context.Context, sellerID string) (*domain.SellerToken, error)

	// UpsertSellerToken creates or replaces the record keyed by SellerID.
	// At most one record exists per seller.
	UpsertSellerToken(ctx context.Context, token domain.SellerToken) error
}
