package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"credence/config"
	"credence/internal/domain/service"
	"credence/internal/errors"
)

// minTokenBytes is the floor for token entropy: 128 bits.
const minTokenBytes = 16

// randomTokenMinter mints opaque session tokens from crypto/rand and hashes
// them with SHA-256 for storage.
type randomTokenMinter struct {
	tokenBytes int
}

// NewTokenMinter is the constructor for randomTokenMinter. Configured sizes
// below 128 bits are clamped up rather than honored.
func NewTokenMinter(cfg *config.Config) service.TokenMinter {
	tokenBytes := cfg.Auth.TokenBytes
	if tokenBytes < minTokenBytes {
		tokenBytes = minTokenBytes
	}

	return &randomTokenMinter{tokenBytes: tokenBytes}
}

// Mint returns a fresh random token, base64url-encoded without padding so it
// travels safely in cookies and headers.
func (m *randomTokenMinter) Mint() (string, error) {
	buf := make([]byte, m.tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes for session token")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken returns the hex-encoded SHA-256 of the raw token. This is the
// session store key; the raw token is never persisted.
func (m *randomTokenMinter) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
