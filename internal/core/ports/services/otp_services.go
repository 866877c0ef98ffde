package services

import (
	"github.com/sellerpulse/auth-backend/internal/core/domain"
)

// OTPPurpose identifies which slot of the user aggregate a code belongs to.
type OTPPurpose string

const (
	OTPPurposeVerification  OTPPurpose = "verification"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
)

// OTPResult is the outcome of verifying a submitted code.
type OTPResult string

const (
	OTPValid           OTPResult = "valid"
	OTPInvalid         OTPResult = "invalid"
	OTPExpired         OTPResult = "expired"
	OTPNoCode          OTPResult = "no_otp"
	OTPTooManyAttempts OTPResult = "too_many_attempts"
)

// OTPSvcFacade generates and checks one-time codes. The engine is pure with
// respect to storage: callers own the slot placement and the clearing of the
// slot after a valid check.
type OTPSvcFacade interface {
	// Generate produces a 6-digit numeric code (string-typed to preserve
	// leading zeros) and the slot recording it: expiry now+10m, attempts 0.
	Generate() (code string, slot *domain.OTPSlot)

	// Verify checks a submitted code against the slot. The attempt counter
	// is incremented before the comparison, so an invalid guess still burns
	// an attempt. Short-circuit outcomes (no code, attempts exhausted,
	// expired) do not touch the counter.
	Verify(slot *domain.OTPSlot, submitted string) OTPResult
}
