package services

import (
	"fmt"
	"time"

	"github.com/sellerpulse/auth-backend/internal/core/domain"
	portssvc "github.com/sellerpulse/auth-backend/internal/core/ports/services"
	"github.com/sellerpulse/auth-backend/internal/utils"
)

const (
	otpLength      = 6
	otpValidity    = 10 * time.Minute
	otpMaxAttempts = 3
)

// otpService implements the OTPSvcFacade. Clock and random source are
// injectable so tests can pin both.
type otpService struct {
	now     func() time.Time
	randInt func(max int) int
}

// OTPOption customizes the engine, test use mostly.
type OTPOption func(*otpService)

// WithClock replaces the engine's time source.
func WithClock(now func() time.Time) OTPOption {
	return func(s *otpService) { s.now = now }
}

// WithRandSource replaces the engine's random source.
func WithRandSource(randInt func(max int) int) OTPOption {
	return func(s *otpService) { s.randInt = randInt }
}

// NewOTPService creates a new OTP engine.
func NewOTPService(opts ...OTPOption) portssvc.OTPSvcFacade {
	s := &otpService{
		now:     time.Now,
		randInt: utils.SecureIntn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate produces a fresh 6-digit code and its slot. The code is uniform
// over [000000, 999999] and string-typed to preserve leading zeros.
func (s *otpService) Generate() (string, *domain.OTPSlot) {
	code := fmt.Sprintf("%06d", s.randInt(1000000))
	slot := &domain.OTPSlot{
		Code:      code,
		ExpiresAt: s.now().Add(otpValidity),
		Attempts:  0,
	}
	return code, slot
}

// Verify checks a submitted code against the slot. Outcomes short-circuit in
// order: no code, attempts exhausted, expired. Past those gates the attempt
// counter is incremented before the comparison, so an invalid guess always
// burns an attempt.
func (s *otpService) Verify(slot *domain.OTPSlot, submitted string) portssvc.OTPResult {
	if slot == nil || slot.Code == "" {
		return portssvc.OTPNoCode
	}
	if slot.Attempts >= otpMaxAttempts {
		return portssvc.OTPTooManyAttempts
	}
	if s.now().After(slot.ExpiresAt) {
		return portssvc.OTPExpired
	}

	slot.Attempts++

	if slot.Code != submitted {
		return portssvc.OTPInvalid
	}
	return portssvc.OTPValid
}
