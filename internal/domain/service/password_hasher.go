// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted, self-describing digest from a plaintext
	// password. The digest encodes algorithm, cost and salt so verification
	// needs no side-channel lookup and the cost can be raised over time
	// without invalidating old digests.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a digest in constant time.
	// A false result with a nil error is an ordinary mismatch; a non-nil
	// error means the digest could not be parsed and the stored data is
	// corrupted.
	Check(password, digest string) (bool, error)

	// ValidatePasswordStrength checks a plaintext password against the
	// configured strength requirements before it is ever hashed.
	ValidatePasswordStrength(password string) error
}
