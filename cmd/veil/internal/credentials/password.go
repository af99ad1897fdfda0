// Package credentials provides one-way password hashing and verification
// backed by bcrypt. Digests are opaque to callers: they embed the algorithm
// parameters and a per-call random salt, and the only supported operations
// are producing one and checking a candidate secret against one.
package credentials

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrSecretTooLong reports that a secret exceeds bcrypt's input limit.
// Hashing would silently truncate the secret, so it is rejected instead.
var ErrSecretTooLong = errors.New("secret exceeds maximum length for hashing")

// maxSecretLen is bcrypt's hard limit on password input, in bytes.
const maxSecretLen = 72

// HashPassword hashes a secret with a fresh random salt. Two calls with the
// same secret produce different digests; both verify against the original
// secret. The returned digest is safe to persist as-is.
func HashPassword(secret string) (string, error) {
	if len(secret) > maxSecretLen {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrSecretTooLong, len(secret), maxSecretLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword checks a secret against a stored digest. It returns nil on
// a match and a non-nil error otherwise. The comparison runs in time
// independent of where a mismatch occurs.
func ComparePassword(digest, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret))
}

// VerifyPassword reports whether secret reproduces digest. A wrong secret and
// a malformed or foreign digest both yield false; verification never fails
// with an error, so "wrong password" is an ordinary boolean outcome rather
// than an exceptional one.
func VerifyPassword(digest, secret string) bool {
	return ComparePassword(digest, secret) == nil
}
