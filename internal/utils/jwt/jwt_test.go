package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyToken(t *testing.T) {
	userID := uuid.New()
	secret := "test-secret"

	token, err := GenerateAccessToken(userID, secret, time.Minute)
	require.NoError(t, err)

	claims, err := VerifyToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), "secret-a", time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, "secret-b")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), "secret", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, "secret")
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestDecodeWithoutVerify(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateAccessToken(userID, "secret", -time.Minute)
	require.NoError(t, err)

	claims, err := DecodeWithoutVerify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}
