// Package cryptox holds the token primitives for invitation links.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// TokenSize256 provides 256 bits of entropy (43 chars base64url).
const TokenSize256 = 32

// GenerateToken creates a random base64url token (no padding) from size
// bytes of crypto/rand output.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewInvitationToken returns a fresh invitation token. The token is handed to
// the invitee once and never stored.
func NewInvitationToken() (string, error) {
	return GenerateToken(TokenSize256)
}

// FingerprintToken returns the SHA-256 fingerprint stored in place of a
// token, base64url encoded (43 chars).
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
