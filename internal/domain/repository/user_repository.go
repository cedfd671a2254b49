// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"credence/internal/domain/entity"
)

// Domain-specific errors for credential persistence.
var (
	// ErrUserNotFound is returned when no credential exists for a username.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when inserting a credential whose
	// username is already taken. The storage layer's unique constraint is
	// the authority; this error is how that constraint surfaces.
	ErrDuplicateUsername = errors.New("username already exists")
)

// UserRepository defines the standard operations for credential persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByUsername retrieves a single credential by its username.
	FindByUsername(ctx context.Context, username string) (*entity.Credential, error)

	// Create persists a new credential. Returns ErrDuplicateUsername when the
	// username is already present, closing the race between concurrent
	// registrations at the storage layer.
	Create(ctx context.Context, credential *entity.Credential) error
}
