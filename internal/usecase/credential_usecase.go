// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"credence/internal/domain/entity"
)

// RegisterInput carries the data needed to register a new credential.
type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterOutput is the result of a successful registration. It exposes the
// created credential with its digest only; the plaintext is gone.
type RegisterOutput struct {
	Credential *entity.Credential
}

// AuthenticateInput carries a login attempt.
type AuthenticateInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthenticateOutput is the result of a successful login.
type AuthenticateOutput struct {
	SessionToken *entity.SessionToken
}

// CredentialUsecase is the authentication kernel: it owns credential
// verification and session issuance, deferring all mutable state to the user
// and session stores. Implementations are stateless and safe for concurrent
// use by many simultaneous callers.
type CredentialUsecase interface {
	// Register creates a new credential for a username that is not yet taken.
	// Fails with ErrInvalidInput on empty input, ErrPasswordStrength when the
	// password misses the configured requirements, and ErrDuplicateUsername
	// when the username is already registered.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Authenticate verifies a username/password pair and, on success, mints
	// and persists a session token. Rejections come back as *AuthFailure;
	// unknown-username and wrong-password attempts are indistinguishable to
	// the caller in both response and cost.
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)

	// ValidateSession resolves a raw session token to its username. Missing
	// and expired sessions come back as *SessionInvalid; an expired session
	// is deleted as a side effect, so a second validation reports not_found.
	ValidateSession(ctx context.Context, token string) (string, error)

	// Logout deletes the session for the given raw token. Idempotent: an
	// absent token is not an error.
	Logout(ctx context.Context, token string) error
}
