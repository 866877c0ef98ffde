package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerpulse/auth-backend/internal/utils"
)

func TestGenerateJWT_RoundTrip(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "admin", "secret", time.Hour, "issuer")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "issuer", claims.Issuer)
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "user", "secret", time.Hour, "issuer")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "user", "secret", -time.Minute, "issuer")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestDecodeJWTUnverified_IgnoresExpiryAndSignature(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "user", "some-secret", -time.Minute, "issuer")
	require.NoError(t, err)

	claims, err := utils.DecodeJWTUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestDecodeJWTUnverified_Garbage(t *testing.T) {
	_, err := utils.DecodeJWTUnverified("garbage")
	assert.Error(t, err)
}

func TestSecureIntn_Bounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		n := utils.SecureIntn(1000000)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 1000000)
	}
}

func TestGenerateSecureRandomString(t *testing.T) {
	s, err := utils.GenerateSecureRandomString(16)
	require.NoError(t, err)
	assert.Len(t, s, 32)

	_, err = utils.GenerateSecureRandomString(0)
	assert.Error(t, err)
}
