// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"credence/config"
	domainerrors "credence/internal/domain/errors"
	"credence/internal/domain/service"
	"credence/internal/errors"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher. Cost and strength
// requirements come from configuration.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	return &bcryptHasher{
		cost:     cfg.Auth.BcryptCost,
		strength: *cfg.PasswordStrength,
	}
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost and no
// strength requirements beyond a non-empty password. Used in tests where the
// default cost would dominate the run time.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{
		cost:     cost,
		strength: config.PasswordStrengthConfig{MinLength: 1, MaxLength: 1024},
	}
}

// Hash generates a salted digest from a plaintext password using bcrypt.
// bcrypt handles salt generation and encodes algorithm, cost and salt into
// the digest itself, so verification needs no extra state and the cost can be
// raised later without invalidating existing digests.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", domainerrors.ErrInvalidInput.WrapMessage("password must not be empty")
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt hash failed")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt digest. bcrypt's
// comparison is constant-time over the hash output. A mismatch is reported
// as (false, nil); a digest that cannot be parsed is corrupted stored data
// and reported as an error.
func (h *bcryptHasher) Check(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, domainerrors.ErrMalformedDigest.WrapMessage(err.Error())
}

// ValidatePasswordStrength checks the password against the configured
// requirements. Only the length bounds apply unless character-class
// requirements were enabled in configuration.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.strength.MinLength {
		return domainerrors.ErrPasswordStrength.WithDetails("password is too short")
	}
	if h.strength.MaxLength > 0 && len(password) > h.strength.MaxLength {
		return domainerrors.ErrPasswordStrength.WithDetails("password is too long")
	}
	if h.strength.RequireUppercase && !hasClass(password, unicode.IsUpper) {
		return domainerrors.ErrPasswordStrength.WithDetails("password must contain at least one uppercase letter")
	}
	if h.strength.RequireLowercase && !hasClass(password, unicode.IsLower) {
		return domainerrors.ErrPasswordStrength.WithDetails("password must contain at least one lowercase letter")
	}
	if h.strength.RequireNumbers && !hasClass(password, unicode.IsDigit) {
		return domainerrors.ErrPasswordStrength.WithDetails("password must contain at least one number")
	}
	if h.strength.RequireSpecial && !hasClass(password, isSpecial) {
		return domainerrors.ErrPasswordStrength.WithDetails("password must contain at least one special character")
	}

	return nil
}

func hasClass(s string, class func(rune) bool) bool {
	for _, r := range s {
		if class(r) {
			return true
		}
	}

	return false
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}
