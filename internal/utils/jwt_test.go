package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := NewSessionToken(testSecret, "user-123", "user", time.Hour)
	require.NoError(t, err)

	claims, err := ParseSessionToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Exp, time.Minute)
}

func TestOtpSessionTokenRoundTrip(t *testing.T) {
	token, err := NewOtpSessionToken(testSecret, "user-123", 15*time.Minute)
	require.NoError(t, err)

	claims, err := ParseOtpSessionToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.Exp, time.Minute)
}

func TestParseSessionTokenExpired(t *testing.T) {
	token, err := NewSessionToken(testSecret, "user-123", "user", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	token, err := NewSessionToken(testSecret, "user-123", "user", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken("another-secret", token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken(testSecret, "not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

// A token signed with "none" must never validate, even with a correct
// payload.
func TestParseSessionTokenRejectsNoneAlgorithm(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user",
		"id":  "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

// A session token and an OTP-session token share the signing secret,
// so a session token parses as OTP-session claims too; the service
// layer relies on the id claim being present either way.
func TestOtpSessionClaimsFromSessionToken(t *testing.T) {
	token, err := NewSessionToken(testSecret, "user-123", "user", time.Hour)
	require.NoError(t, err)

	claims, err := ParseOtpSessionToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}
