// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Session represents an authenticated login session as persisted in the
// session store. Only a SHA-256 hash of the raw token is stored, so a leaked
// store snapshot cannot be replayed as live tokens.
type Session struct {
	TokenHash string    // SHA-256 hash of the raw session token, used as the lookup key.
	Username  string    // The username this session belongs to.
	IssuedAt  time.Time // When the session was created (i.e., when the user logged in).
	ExpiresAt time.Time // The exact time when this session becomes invalid.
}

// ExpiredAt reports whether the session is expired relative to the given time.
func (s *Session) ExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// SessionToken is the value handed back to callers after a successful login.
// It carries the raw, unguessable token exactly once; the kernel never
// persists or logs it.
type SessionToken struct {
	Token     string    // The raw opaque token. At least 128 bits of entropy.
	Username  string    // The authenticated username.
	IssuedAt  time.Time // When the token was minted.
	ExpiresAt time.Time // When the token stops being accepted.
}
