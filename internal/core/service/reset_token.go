package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const resetNonceBytes = 32

// newResetNonce returns the secret that goes into the mailed link. Only its hash is stored.
func newResetNonce() (string, error) {
	b := make([]byte, resetNonceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate reset nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashResetToken(nonce string) string {
	sum := sha256.Sum256([]byte(nonce))
	return hex.EncodeToString(sum[:])
}

func resetHashMatches(stored, nonce string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(hashResetToken(nonce))) == 1
}
