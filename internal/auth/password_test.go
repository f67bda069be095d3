package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordDeterministic(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	a := HashPassword("correct horse battery staple", salt)
	b := HashPassword("correct horse battery staple", salt)
	assert.Equal(t, a, b)
}

func TestHashPasswordIsLowerHexDigest(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	digest := HashPassword("password", salt)
	assert.Len(t, digest, 64)

	raw, err := hex.DecodeString(digest)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestHashPasswordSensitivity(t *testing.T) {
	salt1, err := NewSalt()
	require.NoError(t, err)
	salt2, err := NewSalt()
	require.NoError(t, err)

	t.Run("different password, same salt", func(t *testing.T) {
		assert.NotEqual(t, HashPassword("password", salt1), HashPassword("Password", salt1))
	})

	t.Run("same password, different salt", func(t *testing.T) {
		assert.NotEqual(t, HashPassword("password", salt1), HashPassword("password", salt2))
	})
}

func TestNewSalt(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 16; i++ {
		salt, err := NewSalt()
		require.NoError(t, err)
		assert.Len(t, salt, 64)

		_, err = hex.DecodeString(salt)
		require.NoError(t, err)

		assert.False(t, seen[salt], "salt repeated")
		seen[salt] = true
	}
}

func TestNewSessionToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 16; i++ {
		token, err := NewSessionToken()
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		assert.NotContains(t, token, "=")

		assert.False(t, seen[token], "token repeated")
		seen[token] = true
	}
}
