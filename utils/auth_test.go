package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken("user-1", "admin@example.com", "admin", secret, time.Hour)
	require.NoError(t, err)

	claims, err := VerifyToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, TokenIssuer, claims.Issuer)
}

func TestVerifyTokenRejects(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken("user-1", "a@b.c", "admin", secret, time.Hour)
		require.NoError(t, err)
		_, err = VerifyToken(token, "other")
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := GenerateToken("user-1", "a@b.c", "admin", secret, -time.Minute)
		require.NoError(t, err)
		_, err = VerifyToken(token, secret)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := VerifyToken("not-a-token", secret)
		assert.Error(t, err)
	})
}

func TestGenerateRefreshToken(t *testing.T) {
	a, err := GenerateRefreshToken()
	require.NoError(t, err)
	b, err := GenerateRefreshToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
