package redis

import (
	"context"
	"encoding/json"
	"time"

	"credence/internal/domain/entity"
	"credence/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// expiryGrace keeps an expired session record around long enough for the
// kernel to observe the expiry and delete it explicitly. Redis TTL is a
// safety net, not the authority on session expiry.
const expiryGrace = 24 * time.Hour

// sessionRecord is the stored JSON form of a session. The token hash lives
// in the key, not the value.
type sessionRecord struct {
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// sessionRepository implements the repository.SessionRepository interface.
type sessionRepository struct {
	client *redis.Client
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(client *redis.Client) repository.SessionRepository {
	return &sessionRepository{client: client}
}

// Create persists a new session record keyed by its token hash.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	record := sessionRecord{
		Username:  session.Username,
		IssuedAt:  session.IssuedAt,
		ExpiresAt: session.ExpiresAt,
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session record")
	}

	ttl := time.Until(session.ExpiresAt) + expiryGrace
	if err := repo.client.Set(ctx, sessionKey(session.TokenHash), payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to store session record")
	}

	return nil
}

// FindByTokenHash retrieves a session by its token hash. Expiry is not
// evaluated here.
func (repo *sessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	payload, err := repo.client.Get(ctx, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to load session record")
	}

	var record sessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session record")
	}

	return &entity.Session{
		TokenHash: tokenHash,
		Username:  record.Username,
		IssuedAt:  record.IssuedAt,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// Delete removes a session by its token hash. Deleting an absent session is
// not an error.
func (repo *sessionRepository) Delete(ctx context.Context, tokenHash string) error {
	if err := repo.client.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete session record")
	}

	return nil
}

func sessionKey(tokenHash string) string {
	return sessionKeyPrefix + tokenHash
}
