package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellerpulse/auth-backend/internal/apperrors"
	"github.com/sellerpulse/auth-backend/internal/core/domain"
	portsrepo "github.com/sellerpulse/auth-backend/internal/core/ports/repositories"
)

// PgxUserRepository persists the User aggregate as a single row. The OTP
// slots and linked Amazon accounts live in jsonb columns so every mutation
// stays a single-row read-modify-write.
type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `
	user_id, name, email, password_hash, role, is_email_verified, is_active,
	verification_otp, password_reset_otp, access_token, refresh_token,
	login_attempts, is_locked, lock_until, amazon_accounts,
	last_login_at, deactivated_at, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsEmailVerified,
		&user.IsActive,
		&user.VerificationOTP,
		&user.PasswordResetOTP,
		&user.AccessToken,
		&user.RefreshToken,
		&user.LoginAttempts,
		&user.IsLocked,
		&user.LockUntil,
		&user.AmazonAccounts,
		&user.LastLoginAt,
		&user.DeactivatedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
    `
	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsEmailVerified,
		user.IsActive,
		user.VerificationOTP,
		user.PasswordResetOTP,
		user.AccessToken,
		user.RefreshToken,
		user.LoginAttempts,
		user.IsLocked,
		user.LockUntil,
		user.AmazonAccounts,
		user.LastLoginAt,
		user.DeactivatedAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	// Full-row rewrite: the aggregate is mutated in memory and written back
	// whole. Concurrent writers are last-write-wins.
	query := `
        UPDATE users SET
            name = $2,
            email = $3,
            password_hash = $4,
            role = $5,
            is_email_verified = $6,
            is_active = $7,
            verification_otp = $8,
            password_reset_otp = $9,
            access_token = $10,
            refresh_token = $11,
            login_attempts = $12,
            is_locked = $13,
            lock_until = $14,
            amazon_accounts = $15,
            last_login_at = $16,
            deactivated_at = $17,
            updated_at = $18
        WHERE user_id = $1;
    `
	tag, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsEmailVerified,
		user.IsActive,
		user.VerificationOTP,
		user.PasswordResetOTP,
		user.AccessToken,
		user.RefreshToken,
		user.LoginAttempts,
		user.IsLocked,
		user.LockUntil,
		user.AmazonAccounts,
		user.LastLoginAt,
		user.DeactivatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
