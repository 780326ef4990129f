package auth

import (
	"testing"
	"time"

	"supplier-core/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.IssueToken(Claims{"user_id": "u1", "role": "customer"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, "customer", claims["role"])

	// Expiry is ~24h out.
	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.InDelta(t, time.Now().Add(24*time.Hour).Unix(), int64(exp), 60)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, entity.ErrTokenExpired)
}

func TestVerifyInvalidToken(t *testing.T) {
	svc := NewTokenService("test-secret")

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken("not-a-token")
		assert.ErrorIs(t, err, entity.ErrTokenInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("different-secret")
		token, err := other.IssueToken(Claims{"user_id": "u1"})
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.ErrorIs(t, err, entity.ErrTokenInvalid)
	})

	t.Run("unsigned algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "u1"})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.ErrorIs(t, err, entity.ErrTokenInvalid)
	})
}
