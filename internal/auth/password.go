// Package auth provides the credential primitives for the directory:
// salted password digests for admin accounts, opaque session tokens,
// and the short "edit passwords" handed to anonymous submitters.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// hashIterations is the PBKDF2 round count. Deliberately slow.
	hashIterations = 100_000

	saltBytes = 32
)

// NewSalt returns a fresh random salt as a hex string. A new salt is
// generated on every password change; salts are never reused.
func NewSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives a hex digest from the password and salt using
// PBKDF2-HMAC-SHA256. Deterministic: the same inputs always produce the
// same digest, so verification is recompute-and-compare.
func HashPassword(password, salt string) string {
	digest := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, sha256.Size, sha256.New)
	return hex.EncodeToString(digest)
}
