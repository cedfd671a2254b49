package auth

import (
	"fmt"
	"testing"

	"credence/config"
	domainerrors "credence/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	password := "correcthorse"
	digest, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, digest)
	assert.NotEqual(t, password, digest)

	match, err := hasher.Check(password, digest)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = hasher.Check("wrongpass", digest)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestBcryptHasher_HashEmptyPassword(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	_, err := hasher.Hash("")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestBcryptHasher_FreshSaltPerCall(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	password := "correcthorse"
	first, err := hasher.Hash(password)
	require.NoError(t, err)
	second, err := hasher.Hash(password)
	require.NoError(t, err)

	// Two digests of the same password differ because each carries a fresh
	// salt, yet both verify.
	assert.NotEqual(t, first, second)

	match, err := hasher.Check(password, first)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = hasher.Check(password, second)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestBcryptHasher_DistinctInputsDoNotVerify(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	digest, err := hasher.Hash("the-real-password")
	require.NoError(t, err)

	for i := range 20 {
		candidate := fmt.Sprintf("not-the-password-%d", i)
		match, err := hasher.Check(candidate, digest)
		require.NoError(t, err)
		assert.False(t, match, "candidate %q must not verify", candidate)
	}
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	testCases := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"garbage", "not-a-bcrypt-digest"},
		{"truncated", "$2a$10$tooshort"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			match, err := hasher.Check("anything", tc.digest)
			assert.False(t, match)
			// Corrupted stored data is an error, never a silent mismatch.
			assert.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrMalformedDigest))
		})
	}
}

func TestBcryptHasher_ConfiguredCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasherWithCost(customCost)

	digest, err := hasher.Hash("correcthorse")
	require.NoError(t, err)

	// The digest is self-describing: the cost rides along with it.
	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_OldDigestsSurviveCostIncrease(t *testing.T) {
	oldHasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	digest, err := oldHasher.Hash("correcthorse")
	require.NoError(t, err)

	// A hasher configured with a higher cost still verifies digests minted
	// at the old cost, so the population can migrate gradually.
	newHasher := NewBcryptHasherWithCost(bcrypt.MinCost + 2)
	match, err := newHasher.Check("correcthorse", digest)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength: 8,
			MaxLength: 64,
		},
	}
	hasher := NewBcryptHasher(cfg)

	// Length bounds only by default: a plain passphrase passes.
	assert.NoError(t, hasher.ValidatePasswordStrength("correcthorse"))
	assert.Error(t, hasher.ValidatePasswordStrength("short"))

	// Character class requirements are opt-in.
	cfg.PasswordStrength.RequireUppercase = true
	cfg.PasswordStrength.RequireNumbers = true
	strict := NewBcryptHasher(cfg)
	assert.Error(t, strict.ValidatePasswordStrength("correcthorse"))
	assert.Error(t, strict.ValidatePasswordStrength("Correcthorse"))
	assert.NoError(t, strict.ValidatePasswordStrength("Correcthorse1"))
}
