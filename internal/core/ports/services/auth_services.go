package services

import (
	"context"

	"github.com/sellerpulse/auth-backend/internal/core/domain"
	"github.com/sellerpulse/auth-backend/internal/dto"
)

// AuthSvcFacade is the orchestrator composing the user store, lock policy,
// password manager, OTP engine, token issuer and revocation registry into the
// account lifecycle flows. Every method maps store and dependency failures to
// the apperrors taxonomy.
type AuthSvcFacade interface {
	// Signup creates an unverified user and dispatches a verification OTP.
	// If dispatch fails the just-created user is deleted again so no
	// unverifiable account is left behind.
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.SignupData, error)

	// VerifyEmail checks the verification OTP and marks the email verified.
	VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) error

	// ResendVerification regenerates and resends the verification OTP.
	// Returns the dev preview URL when the sender provides one.
	ResendVerification(ctx context.Context, req dto.ResendVerificationRequest) (previewURL string, err error)

	// Login authenticates credentials, applying the account lock policy on
	// both the failure and the success path.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginData, error)

	// RefreshAccessToken mints a new access token from a valid refresh token.
	RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.RefreshTokenData, error)

	// Logout revokes both tokens of the pair and clears the stored session
	// pointers. Tokens are decoded, not verified, so logout succeeds on a
	// just-expired access token.
	Logout(ctx context.Context, userID string, req dto.LogoutRequest) error

	// Deactivate flags the account inactive.
	Deactivate(ctx context.Context, userID string) error

	// Reactivate re-enables a deactivated account after a password check.
	Reactivate(ctx context.Context, req dto.ReactivateRequest) error

	// RequestPasswordReset generates and sends a password reset OTP.
	RequestPasswordReset(ctx context.Context, req dto.RequestPasswordResetRequest) (previewURL string, err error)

	// ResetPassword verifies the reset OTP and replaces the password hash.
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error

	// GetUserByID loads a user for authenticated request contexts.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
