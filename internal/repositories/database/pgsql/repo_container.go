package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/sellerpulse/auth-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the pgx-backed repositories. The token
// blacklist is redis-backed and wired separately at the composition root.
func NewRepositoryProvider(db *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(db),
		SellerTokenRepo: newPgxSellerTokenRepository(db),
	}
}
