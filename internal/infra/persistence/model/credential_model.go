// Package model contains the GORM models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// CredentialModel mirrors the 'credentials' table. The unique index on
// username is the authority for duplicate registration; concurrent inserts
// for the same name are resolved here, not in application code.
type CredentialModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Username       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_credentials_username"`
	PasswordDigest string    `gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "credentials"
}
