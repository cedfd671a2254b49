// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"credence/internal/domain/entity"
)

// ErrSessionNotFound is returned when no session exists for a token hash.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the interface for session persistence. Sessions
// are keyed by the SHA-256 hash of the raw token; the raw token itself never
// reaches the store.
type SessionRepository interface {
	// Create persists a new session record.
	Create(ctx context.Context, session *entity.Session) error

	// FindByTokenHash retrieves a session by its token hash. Expiry is not
	// evaluated here; the kernel decides expiry against its injected clock.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	// Delete removes a session by its token hash. Deleting an absent session
	// is not an error.
	Delete(ctx context.Context, tokenHash string) error
}
