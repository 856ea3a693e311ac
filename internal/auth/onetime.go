package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	// oneTimeTokenBytes is the entropy of a one-time token before encoding.
	oneTimeTokenBytes = 32

	// VerificationTokenTTL is how long an email verification link stays valid.
	VerificationTokenTTL = 24 * time.Hour
	// ResetTokenTTL is how long a password reset link stays valid.
	ResetTokenTTL = time.Hour
)

// NewOneTimeToken returns a fresh one-time token: the plaintext to embed in
// an emailed link, and the digest to persist. The plaintext is 32 bytes of
// cryptographically secure randomness, hex-encoded; only the digest is ever
// stored. A plain SHA-256 digest is enough here because the token is
// high-entropy random data, not a user-chosen secret.
func NewOneTimeToken() (plain string, digest string, err error) {
	buf := make([]byte, oneTimeTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(buf)
	return plain, HashToken(plain), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a one-time token.
// Verification re-hashes the presented plaintext and compares digests; the
// plaintext is never recoverable from storage.
func HashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
