package service

// TokenMinter defines the interface for producing and hashing opaque session
// tokens. This abstracts the entropy source and encoding from the use cases.
type TokenMinter interface {
	// Mint returns a fresh, unguessable token with at least 128 bits of
	// entropy, encoded for safe transport in cookies and headers.
	Mint() (string, error)

	// HashToken returns the deterministic storage hash of a raw token.
	// Sessions are looked up by this hash so the raw token is never persisted.
	HashToken(token string) string
}
