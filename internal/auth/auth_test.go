package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestTokenManagerGenerateAndParse(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, err := tm.Generate("ops@hospital.org", "organization", "HOSP-001")
	require.NoError(t, err)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@hospital.org", claims.Email)
	assert.Equal(t, "organization", claims.Role)
	assert.Equal(t, "HOSP-001", claims.RegistrationNumber)
}

func TestTokenManagerRejectsForeignAndExpiredTokens(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	other := NewTokenManager("other-secret", time.Hour)
	foreign, err := other.Generate("a@b.c", "admin", "")
	require.NoError(t, err)
	_, err = tm.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenManager("test-secret", -time.Minute)
	stale, err := expired.Generate("a@b.c", "admin", "")
	require.NoError(t, err)
	_, err = tm.Parse(stale)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &JWTClaims{Role: "superadmin"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
