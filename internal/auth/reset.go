package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// ResetTokenTTLMinutes is how long a password-reset token stays valid.
const ResetTokenTTLMinutes = 10

// NewResetToken returns the plaintext token handed to the requester and the
// SHA-256 hex digest that gets persisted. The plaintext never touches storage.
func NewResetToken() (token, digest string, err error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	token = hex.EncodeToString(raw)
	return token, DigestResetToken(token), nil
}

func DigestResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// MatchResetToken compares a presented token against the stored digest in
// constant time.
func MatchResetToken(token, storedDigest string) bool {
	d := DigestResetToken(token)
	return subtle.ConstantTimeCompare([]byte(d), []byte(storedDigest)) == 1
}
