package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessTokenIsLongAndDistinct(t *testing.T) {
	first, err := GenerateAccessToken()
	require.NoError(t, err)
	second, err := GenerateAccessToken()
	require.NoError(t, err)

	// 32 random bytes encode to 52 unpadded base32 characters.
	assert.Len(t, first, 52)
	assert.NotEqual(t, first, second)
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-123", time.Hour)
	require.NoError(t, err)

	sub, err := ExtractUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-123", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractUserIDFromToken(token)
	assert.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
