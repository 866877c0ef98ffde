package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellerpulse/auth-backend/internal/apperrors"
	"github.com/sellerpulse/auth-backend/internal/core/domain"
	portsrepo "github.com/sellerpulse/auth-backend/internal/core/ports/repositories"
)

// PgxSellerTokenRepository persists Amazon seller credential records.
type PgxSellerTokenRepository struct {
	db *pgxpool.Pool
}

func newPgxSellerTokenRepository(db *pgxpool.Pool) portsrepo.SellerTokenRepositoryFacade {
	return &PgxSellerTokenRepository{db: db}
}

var _ portsrepo.SellerTokenRepositoryFacade = (*PgxSellerTokenRepository)(nil)

func (r *PgxSellerTokenRepository) FindBySellerID(ctx context.Context, sellerID string) (*domain.SellerToken, error) {
	query := `
		SELECT seller_id, marketplace_id, refresh_token, access_token, token_expires_at, created_at, updated_at
		FROM seller_tokens
		WHERE seller_id = $1;
	`
	var token domain.SellerToken
	err := r.db.QueryRow(ctx, query, sellerID).Scan(
		&token.SellerID,
		&token.MarketplaceID,
		&token.RefreshToken,
		&token.AccessToken,
		&token.TokenExpiresAt,
		&token.CreatedAt,
		&token.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find seller token for %s: %w", sellerID, err)
	}
	return &token, nil
}

func (r *PgxSellerTokenRepository) UpsertSellerToken(ctx context.Context, token domain.SellerToken) error {
	// seller_id is the primary key, so repeated callbacks for the same
	// seller update the single existing record.
	query := `
        INSERT INTO seller_tokens (seller_id, marketplace_id, refresh_token, access_token, token_expires_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (seller_id) DO UPDATE SET
            marketplace_id = EXCLUDED.marketplace_id,
            refresh_token = EXCLUDED.refresh_token,
            access_token = EXCLUDED.access_token,
            token_expires_at = EXCLUDED.token_expires_at,
            updated_at = EXCLUDED.updated_at;
    `
	_, err := r.db.Exec(ctx, query,
		token.SellerID,
		token.MarketplaceID,
		token.RefreshToken,
		token.AccessToken,
		token.TokenExpiresAt,
		token.CreatedAt,
		token.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert seller token for %s: %w", token.SellerID, err)
	}
	return nil
}
