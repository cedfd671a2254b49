// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential represents a stored username/password pair. The plaintext
// password never appears here; only the self-describing digest produced by
// the password hasher is persisted.
type Credential struct {
	ID             uuid.UUID // The unique ID for this credential record.
	Username       string    // The login identifier. Unique and immutable after creation.
	PasswordDigest string    // The bcrypt digest of the password. Encodes algorithm, cost and salt.
	CreatedAt      time.Time // Timestamp of when this credential was registered.
}
