package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwear/storefront/internal/infrastructure/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newVerifier() *TokenVerifier {
	return NewTokenVerifier(config.JWTConfig{Secret: testSecret, Issuer: "driftwear-accounts"})
}

func mintToken(t *testing.T, mutate func(*Claims)) string {
	t.Helper()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "driftwear-accounts",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: "user-1",
		Email:  "jo@example.com",
	}
	if mutate != nil {
		mutate(claims)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestVerify(t *testing.T) {
	t.Run("accepts a valid token", func(t *testing.T) {
		claims, err := newVerifier().Verify(mintToken(t, nil))

		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "jo@example.com", claims.Email)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		token := mintToken(t, func(c *Claims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		})

		_, err := newVerifier().Verify(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects wrong issuer", func(t *testing.T) {
		token := mintToken(t, func(c *Claims) { c.Issuer = "someone-else" })

		_, err := newVerifier().Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects wrong signature", func(t *testing.T) {
		other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "driftwear-accounts",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			UserID: "user-1",
		}).SignedString([]byte("another-secret-entirely-32-chars"))
		require.NoError(t, err)

		_, err = newVerifier().Verify(other)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects missing user id", func(t *testing.T) {
		token := mintToken(t, func(c *Claims) { c.UserID = "" })

		_, err := newVerifier().Verify(token)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := newVerifier().Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
