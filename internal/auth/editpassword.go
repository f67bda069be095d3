package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	editPasswordLength   = 10
	editPasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateEditPassword produces the per-station secret that lets an
// anonymous submitter edit or delete their entry later without an
// account. It is a human-transcribable 10-character string, not a
// session token: always at least one lowercase letter, one uppercase
// letter and three digits, regenerated until the mix is met.
func GenerateEditPassword() (string, error) {
	max := big.NewInt(int64(len(editPasswordAlphabet)))
	for {
		buf := make([]byte, editPasswordLength)
		for i := range buf {
			n, err := rand.Int(rand.Reader, max)
			if err != nil {
				return "", fmt.Errorf("failed to generate edit password: %w", err)
			}
			buf[i] = editPasswordAlphabet[n.Int64()]
		}

		var lower, upper, digits int
		for _, c := range buf {
			switch {
			case c >= 'a' && c <= 'z':
				lower++
			case c >= 'A' && c <= 'Z':
				upper++
			case c >= '0' && c <= '9':
				digits++
			}
		}
		if lower >= 1 && upper >= 1 && digits >= 3 {
			return string(buf), nil
		}
	}
}
