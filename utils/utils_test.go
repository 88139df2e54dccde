package utils

import (
	"testing"
	"time"

	"deckbuilder/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong horse", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	config.JWTSecret = "test-secret"

	token, claims, err := GenerateJWT("user-1", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	parsed, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestJWTRejectsExpiredAndForeignTokens(t *testing.T) {
	config.JWTSecret = "test-secret"

	expired, _, err := GenerateJWT("user-1", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	token, _, err := GenerateJWT("user-1", time.Hour)
	require.NoError(t, err)
	config.JWTSecret = "another-secret"
	_, err = ParseJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseJWT("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
