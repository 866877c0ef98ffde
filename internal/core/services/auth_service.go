package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sellerpulse/auth-backend/internal/apperrors"
	"github.com/sellerpulse/auth-backend/internal/core/domain"
	portsrepo "github.com/sellerpulse/auth-backend/internal/core/ports/repositories"
	portssvc "github.com/sellerpulse/auth-backend/internal/core/ports/services"
	"github.com/sellerpulse/auth-backend/internal/dto"
	"github.com/sellerpulse/auth-backend/internal/utils"
)

// authService composes the user store, lock policy, OTP engine, token issuer
// and revocation registry into the account lifecycle flows.
type authService struct {
	userRepo      portsrepo.UserRepositoryFacade
	blacklistRepo portsrepo.TokenBlacklistRepositoryFacade
	tokenService  portssvc.TokenSvcFacade
	otpService    portssvc.OTPSvcFacade
	emailSender   portssvc.EmailSender
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	userRepo portsrepo.UserRepositoryFacade,
	blacklistRepo portsrepo.TokenBlacklistRepositoryFacade,
	tokenService portssvc.TokenSvcFacade,
	otpService portssvc.OTPSvcFacade,
	emailSender portssvc.EmailSender,
) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:      userRepo,
		blacklistRepo: blacklistRepo,
		tokenService:  tokenService,
		otpService:    otpService,
		emailSender:   emailSender,
	}
}

// NormalizeEmail lowercases and trims an address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an unverified user and sends the verification OTP. When
// dispatch fails the user row is deleted again: the system must not keep
// accounts that can never be verified.
func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.SignupData, error) {
	email := NormalizeEmail(req.Email)

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("User with this email already exists")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	code, slot := s.otpService.Generate()
	user := domain.User{
		UserID:          uuid.NewString(),
		Name:            strings.TrimSpace(req.Name),
		Email:           email,
		PasswordHash:    passwordHash,
		Role:            domain.RoleUser,
		IsActive:        true,
		VerificationOTP: slot,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	previewURL, err := s.emailSender.SendOTP(ctx, user.Email, code, portssvc.OTPPurposeVerification)
	if err != nil {
		// Compensating action: roll the just-created user back.
		if delErr := s.userRepo.DeleteUser(ctx, user.UserID); delErr != nil {
			return nil, fmt.Errorf("failed to roll back user %s after email dispatch failure: %w", user.UserID, delErr)
		}
		return nil, apperrors.NewDependencyError("Failed to send verification email. Please try again.", err)
	}

	return &dto.SignupData{
		ID:              user.UserID,
		Name:            user.Name,
		Email:           user.Email,
		IsEmailVerified: user.IsEmailVerified,
		EmailPreviewURL: previewURL,
	}, nil
}

// VerifyEmail consumes the verification OTP and marks the address verified.
func (s *authService) VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) error {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	result := s.otpService.Verify(user.VerificationOTP, req.OTP)
	if result == portssvc.OTPValid {
		user.IsEmailVerified = true
		user.VerificationOTP = nil
		user.UpdatedAt = time.Now()
		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			return fmt.Errorf("failed to persist email verification: %w", err)
		}
		return nil
	}

	// An invalid guess burned an attempt; persist the counter so the budget
	// holds across requests.
	if result == portssvc.OTPInvalid {
		user.UpdatedAt = time.Now()
		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			return fmt.Errorf("failed to persist OTP attempt: %w", err)
		}
	}
	return otpResultError(result)
}

// ResendVerification regenerates the verification OTP and resends it.
func (s *authService) ResendVerification(ctx context.Context, req dto.ResendVerificationRequest) (string, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewNotFoundError("User not found")
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	if user.IsEmailVerified {
		return "", apperrors.NewBadRequestError("Email is already verified")
	}

	code, slot := s.otpService.Generate()
	user.VerificationOTP = slot
	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return "", fmt.Errorf("failed to persist regenerated OTP: %w", err)
	}

	previewURL, err := s.emailSender.SendOTP(ctx, user.Email, code, portssvc.OTPPurposeVerification)
	if err != nil {
		return "", apperrors.NewDependencyError("Failed to send verification email. Please try again.", err)
	}
	return previewURL, nil
}

// Login authenticates credentials. The lock policy runs on both paths: a
// failed password check counts toward lockout, a successful one resets the
// counters unconditionally.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginData, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Must not leak whether the account exists.
			return nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	now := time.Now()
	locked, recovered := user.IsAccountLocked(now)
	if recovered {
		// Lazy lock-expiry recovery; persist the cleared state.
		user.UpdatedAt = now
		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			return nil, fmt.Errorf("failed to persist lock recovery: %w", err)
		}
	}
	if locked {
		return nil, apperrors.NewForbiddenError(fmt.Sprintf(
			"Account is locked due to too many failed attempts. Please try again after %d minutes", user.LockRemainingMinutes(now)))
	}
	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("Account is deactivated. Please contact support.")
	}
	if !user.IsEmailVerified {
		return nil, apperrors.NewForbiddenError("Please verify your email before logging in")
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		user.RegisterFailedLogin(now)
		user.UpdatedAt = now
		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			return nil, fmt.Errorf("failed to persist failed login attempt: %w", err)
		}
		if nowLocked, _ := user.IsAccountLocked(now); nowLocked {
			return nil, apperrors.NewForbiddenError("Account is now locked due to too many failed attempts. Please try again after 30 minutes.")
		}
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}

	user.ResetLoginAttempts()

	accessToken, _, err := s.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, _, err := s.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	user.AccessToken = accessToken
	user.RefreshToken = refreshToken
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to persist login state: %w", err)
	}

	return &dto.LoginData{
		ID:           user.UserID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshAccessToken mints a new access token from a valid refresh token.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.RefreshTokenData, error) {
	claims, err := s.tokenService.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenExpired) {
			return nil, apperrors.NewUnauthorizedError("Refresh token expired")
		}
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("Account is deactivated")
	}

	accessToken, _, err := s.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	user.AccessToken = accessToken
	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	return &dto.RefreshTokenData{AccessToken: accessToken}, nil
}

// Logout revokes both tokens of the pair and clears the stored session
// pointers. Tokens are decoded without signature verification so a
// just-expired access token can still be revoked.
func (s *authService) Logout(ctx context.Context, userID string, req dto.LogoutRequest) error {
	if req.AccessToken == "" || req.RefreshToken == "" {
		return apperrors.NewBadRequestError("Access token and refresh token are required")
	}

	accessClaims, accessErr := s.tokenService.DecodeToken(ctx, req.AccessToken)
	refreshClaims, refreshErr := s.tokenService.DecodeToken(ctx, req.RefreshToken)
	if accessErr != nil || refreshErr != nil {
		return apperrors.NewBadRequestError("Invalid tokens")
	}

	if err := s.blacklistRepo.RevokeToken(ctx, domain.BlacklistedToken{
		Token:     req.AccessToken,
		Type:      domain.TokenTypeAccess,
		ExpiresAt: accessClaims.ExpiresAt,
		UserID:    userID,
	}); err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}
	if err := s.blacklistRepo.RevokeToken(ctx, domain.BlacklistedToken{
		Token:     req.RefreshToken,
		Type:      domain.TokenTypeRefresh,
		ExpiresAt: refreshClaims.ExpiresAt,
		UserID:    userID,
	}); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	user.AccessToken = ""
	user.RefreshToken = ""
	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to clear session tokens: %w", err)
	}
	return nil
}

// Deactivate flags the account inactive.
func (s *authService) Deactivate(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	now := time.Now()
	user.IsActive = false
	user.DeactivatedAt = &now
	user.UpdatedAt = now
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

// Reactivate re-enables a deactivated account after a password check.
func (s *authService) Reactivate(ctx context.Context, req dto.ReactivateRequest) error {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user.IsActive {
		return apperrors.NewBadRequestError("Account is already active")
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return apperrors.NewUnauthorizedError("Invalid credentials")
	}

	user.IsActive = true
	user.DeactivatedAt = nil
	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to reactivate user: %w", err)
	}
	return nil
}

// RequestPasswordReset generates and sends a password reset OTP, mirroring
// the email verification flow on the reset slot.
func (s *authService) RequestPasswordReset(ctx context.Context, req dto.RequestPasswordResetRequest) (string, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewNotFoundError("User not found")
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	code, slot := s.otpService.Generate()
	user.PasswordResetOTP = slot
	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return "", fmt.Errorf("failed to persist reset OTP: %w", err)
	}

	previewURL, err := s.emailSender.SendOTP(ctx, user.Email, code, portssvc.OTPPurposePasswordReset)
	if err != nil {
		return "", apperrors.NewDependencyError("Failed to send password reset email. Please try again.", err)
	}
	return previewURL, nil
}

// ResetPassword verifies the reset OTP and replaces the password hash. The
// slot is cleared on successful use.
func (s *authService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	result := s.otpService.Verify(user.PasswordResetOTP, req.OTP)
	if result != portssvc.OTPValid {
		if result == portssvc.OTPInvalid {
			user.UpdatedAt = time.Now()
			if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
				return fmt.Errorf("failed to persist OTP attempt: %w", err)
			}
		}
		return otpResultError(result)
	}

	passwordHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = passwordHash
	user.PasswordResetOTP = nil
	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to persist new password: %w", err)
	}
	return nil
}

// GetUserByID loads a user for authenticated request contexts.
func (s *authService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func otpResultError(result portssvc.OTPResult) error {
	switch result {
	case portssvc.OTPNoCode:
		return apperrors.NewBadRequestError("No OTP generated")
	case portssvc.OTPTooManyAttempts:
		return apperrors.NewBadRequestError("Too many attempts. Please request a new OTP")
	case portssvc.OTPExpired:
		return apperrors.NewBadRequestError("OTP has expired")
	case portssvc.OTPInvalid:
		return apperrors.NewBadRequestError("Invalid OTP")
	default:
		return nil
	}
}
