package repositories

import (
	"context"

	"github.com/sellerpulse/auth-backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by normalized (lowercased, trimmed) email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser rewrites the full user row, embedded OTP slots and linked
	// accounts included. Callers rely on last-write-wins semantics.
	UpdateUser(ctx context.Context, user domain.User) error

	// DeleteUser removes the user row. Only used as the compensating action
	// when verification email dispatch fails during signup.
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
