package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("Admin123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Admin123!", hash)
	assert.True(t, CheckPasswordHash("Admin123!", hash))
	assert.False(t, CheckPasswordHash("admin123!", hash))
}

func TestTokenPairRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	pair, err := GenerateTokenPair(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	id, err := ParseToken(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	id, err = ParseToken(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseTokenRejectsWrongType(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	pair, err := GenerateTokenPair(7)
	require.NoError(t, err)

	_, err = ParseToken(pair.Refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(pair.Access, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	pair, err := GenerateTokenPair(7)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = ParseToken(pair.Access, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseToken("not-a-token", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateTokenPairRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateTokenPair(1)
	assert.Error(t, err)
}
