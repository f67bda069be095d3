package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEditPassword(t *testing.T) {
	for i := 0; i < 32; i++ {
		pw, err := GenerateEditPassword()
		require.NoError(t, err)
		require.Len(t, pw, 10)

		var lower, upper, digit int
		for _, c := range pw {
			switch {
			case c >= 'a' && c <= 'z':
				lower++
			case c >= 'A' && c <= 'Z':
				upper++
			case c >= '0' && c <= '9':
				digit++
			default:
				t.Fatalf("unexpected character %q in %q", c, pw)
			}
		}

		assert.GreaterOrEqual(t, lower, 1, pw)
		assert.GreaterOrEqual(t, upper, 1, pw)
		assert.GreaterOrEqual(t, digit, 3, pw)
	}
}

func TestGenerateEditPasswordUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		pw, err := GenerateEditPassword()
		require.NoError(t, err)
		assert.False(t, seen[pw], "edit password repeated")
		seen[pw] = true
	}
}
