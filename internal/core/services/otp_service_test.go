package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	portssvc "github.com/sellerpulse/auth-backend/internal/core/ports/services"
	"github.com/sellerpulse/auth-backend/internal/core/services"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerate_PreservesLeadingZeros(t *testing.T) {
	now := time.Now()
	engine := services.NewOTPService(
		services.WithClock(fixedClock(now)),
		services.WithRandSource(func(max int) int { return 7 }),
	)

	code, slot := engine.Generate()

	assert.Equal(t, "000007", code)
	assert.Equal(t, "000007", slot.Code)
	assert.Equal(t, now.Add(10*time.Minute), slot.ExpiresAt)
	assert.Zero(t, slot.Attempts)
}

func TestVerify_Valid(t *testing.T) {
	now := time.Now()
	engine := services.NewOTPService(
		services.WithClock(fixedClock(now)),
		services.WithRandSource(func(max int) int { return 123456 }),
	)
	code, slot := engine.Generate()

	result := engine.Verify(slot, code)

	assert.Equal(t, portssvc.OTPValid, result)
	assert.Equal(t, 1, slot.Attempts)
}

func TestVerify_InvalidBurnsAttempt(t *testing.T) {
	now := time.Now()
	engine := services.NewOTPService(
		services.WithClock(fixedClock(now)),
		services.WithRandSource(func(max int) int { return 123456 }),
	)
	_, slot := engine.Generate()

	assert.Equal(t, portssvc.OTPInvalid, engine.Verify(slot, "000000"))
	assert.Equal(t, 1, slot.Attempts)
	assert.Equal(t, portssvc.OTPInvalid, engine.Verify(slot, "999999"))
	assert.Equal(t, 2, slot.Attempts)
}

func TestVerify_ValidAfterTwoInvalidGuesses(t *testing.T) {
	now := time.Now()
	engine := services.NewOTPService(
		services.WithClock(fixedClock(now)),
		services.WithRandSource(func(max int) int { return 123456 }),
	)
	code, slot := engine.Generate()

	engine.Verify(slot, "000000")
	engine.Verify(slot, "111111")

	assert.Equal(t, portssvc.OTPValid, engine.Verify(slot, code))
}

func TestVerify_TooManyAttemptsAfterThreeInvalid(t *testing.T) {
	now := time.Now()
	engine := services.NewOTPService(
		services.WithClock(fixedClock(now)),
		services.WithRandSource(func(max int) int { return 123456 }),
	)
	code, slot := engine.Generate()

	for i := 0; i < 3; i++ {
		assert.Equal(t, portssvc.OTPInvalid, engine.Verify(slot, "000000"))
	}

	// Budget exhausted; even the correct code is refused and the counter
	// stops moving.
	assert.Equal(t, portssvc.OTPTooManyAttempts, engine.Verify(slot, code))
	assert.Equal(t, 3, slot.Attempts)
}

func TestVerify_Expired(t *testing.T) {
	now := time.Now()
	clock := now
	engine := services.NewOTPService(
		services.WithClock(func() time.Time { return clock }),
		services.WithRandSource(func(max int) int { return 123456 }),
	)
	code, slot := engine.Generate()

	clock = now.Add(10*time.Minute + time.Second)

	assert.Equal(t, portssvc.OTPExpired, engine.Verify(slot, code))
	// Expiry short-circuits before the counter.
	assert.Zero(t, slot.Attempts)
}

func TestVerify_NoCode(t *testing.T) {
	engine := services.NewOTPService()

	assert.Equal(t, portssvc.OTPNoCode, engine.Verify(nil, "123456"))
}
