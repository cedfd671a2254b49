package auth

import (
	"encoding/base64"
	"testing"

	"credence/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMinter(tokenBytes int) *randomTokenMinter {
	cfg := &config.Config{Auth: &config.AuthConfig{TokenBytes: tokenBytes}}

	return NewTokenMinter(cfg).(*randomTokenMinter)
}

func TestTokenMinter_MintEntropy(t *testing.T) {
	minter := newTestMinter(32)

	token, err := minter.Mint()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestTokenMinter_ClampsBelowMinimum(t *testing.T) {
	// 8 bytes would be 64 bits; the minter refuses to go below 128.
	minter := newTestMinter(8)

	token, err := minter.Mint()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(raw), minTokenBytes)
}

func TestTokenMinter_TokensAreUnique(t *testing.T) {
	minter := newTestMinter(32)

	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		token, err := minter.Mint()
		require.NoError(t, err)

		_, dup := seen[token]
		require.False(t, dup, "minted a duplicate token")
		seen[token] = struct{}{}
	}
}

func TestTokenMinter_HashToken(t *testing.T) {
	minter := newTestMinter(32)

	hash := minter.HashToken("some-token")

	// Deterministic, hex-encoded SHA-256.
	assert.Equal(t, minter.HashToken("some-token"), hash)
	assert.Len(t, hash, 64)
	assert.NotEqual(t, minter.HashToken("other-token"), hash)
	assert.NotContains(t, hash, "some-token")
}
