package postgres

import (
	"context"

	"credence/internal/domain/entity"
	"credence/internal/domain/repository"
	"credence/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByUsername retrieves a single credential by its username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.Credential, error) {
	var credentialM model.CredentialModel

	err := repo.db.WithContext(ctx).
		Where("username = ?", username).
		First(&credentialM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toCredentialDomain(&credentialM), nil
}

// Create persists a new credential. The unique index on username closes the
// race between concurrent registrations; a violation surfaces as
// repository.ErrDuplicateUsername.
func (repo *userRepository) Create(ctx context.Context, credential *entity.Credential) error {
	credentialM := fromCredentialDomain(credential)

	if err := repo.db.WithContext(ctx).Create(credentialM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUsername
		}

		return errors.WithStack(err)
	}

	// Update the entity with generated values
	credential.ID = credentialM.ID
	credential.CreatedAt = credentialM.CreatedAt

	return nil
}

func toCredentialDomain(m *model.CredentialModel) *entity.Credential {
	return &entity.Credential{
		ID:             m.ID,
		Username:       m.Username,
		PasswordDigest: m.PasswordDigest,
		CreatedAt:      m.CreatedAt,
	}
}

func fromCredentialDomain(c *entity.Credential) *model.CredentialModel {
	return &model.CredentialModel{
		ID:             c.ID,
		Username:       c.Username,
		PasswordDigest: c.PasswordDigest,
		CreatedAt:      c.CreatedAt,
	}
}
