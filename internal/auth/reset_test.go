package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetTokenDigestMatches(t *testing.T) {
	token, digest, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, token, 64)
	assert.Len(t, digest, 64)
	assert.NotEqual(t, token, digest)

	assert.True(t, MatchResetToken(token, digest))
	assert.False(t, MatchResetToken("wrong-token", digest))
}

func TestResetTokensAreUnique(t *testing.T) {
	a, _, err := NewResetToken()
	require.NoError(t, err)
	b, _, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPasswordVerify(t *testing.T) {
	hash, err := HashPassword("pass1234")
	require.NoError(t, err)
	assert.NotEqual(t, "pass1234", hash)

	assert.NoError(t, VerifyPassword("pass1234", hash))
	assert.Error(t, VerifyPassword("pass12345", hash))
}
