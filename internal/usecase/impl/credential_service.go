// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"credence/config"
	"credence/internal/domain/entity"
	domainerrors "credence/internal/domain/errors"
	"credence/internal/domain/repository"
	"credence/internal/domain/service"
	"credence/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// credentialService implements the CredentialUsecase interface. It holds no
// mutable state of its own; everything lives in the injected stores.
type credentialService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	hasher      service.PasswordHasher
	minter      service.TokenMinter
	clock       service.Clock
	sessionTTL  time.Duration
	// dummyDigest is verified against on the unknown-username path so that
	// rejecting a nonexistent user costs the same one hash comparison as
	// rejecting a wrong password. Computed once at construction.
	dummyDigest string
	logger      *slog.Logger
}

// CredentialServiceParams holds dependencies for the credential service, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	Hasher      service.PasswordHasher
	Minter      service.TokenMinter
	Clock       service.Clock
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCredentialService is the constructor for credentialService. It receives all dependencies as interfaces.
func NewCredentialService(params CredentialServiceParams) (usecase.CredentialUsecase, error) {
	// The dummy digest must be produced by the same hasher at the same cost
	// as real digests, otherwise the two rejection paths diverge in timing.
	dummyDigest, err := params.Hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, errors.Wrap(err, "failed to precompute dummy digest")
	}

	return &credentialService{
		userRepo:    params.UserRepo,
		sessionRepo: params.SessionRepo,
		hasher:      params.Hasher,
		minter:      params.Minter,
		clock:       params.Clock,
		sessionTTL:  params.Config.Auth.SessionTTL,
		dummyDigest: dummyDigest,
		logger:      params.Logger,
	}, nil
}

// Register creates a new credential for a username that is not yet taken.
func (srv *credentialService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if input.Username == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("username must not be empty")
	}
	if input.Password == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("password must not be empty")
	}

	srv.logger.Info("Starting registration", slog.String("username", input.Username))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.logger.Warn("Password validation failed during registration", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "password does not meet security requirements")
	}

	// Pre-check for a friendly rejection; the store's unique constraint is
	// the authority under concurrency.
	_, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err == nil {
		return nil, domainerrors.ErrDuplicateUsername.WrapMessage("username already registered")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, srv.storageError(err, "failed to check username availability")
	}

	digest, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	credential := &entity.Credential{
		Username:       input.Username,
		PasswordDigest: digest,
		CreatedAt:      srv.clock.Now(),
	}

	if err := srv.userRepo.Create(ctx, credential); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			// Lost the race to a concurrent registration for the same name.
			return nil, domainerrors.ErrDuplicateUsername.WrapMessage("username already registered")
		}

		return nil, srv.storageError(err, "failed to create credential")
	}

	srv.logger.Debug("Registration completed", slog.String("username", credential.Username), slog.Any("credentialID", credential.ID))

	return &usecase.RegisterOutput{Credential: credential}, nil
}

// Authenticate verifies a username/password pair and issues a session token
// on success.
func (srv *credentialService) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) (*usecase.AuthenticateOutput, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("username and password must not be empty")
	}

	srv.logger.Debug("Starting authentication", slog.String("username", input.Username))

	credential, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn one hash comparison so this path is not observably
			// cheaper than a wrong password for an existing user.
			_, _ = srv.hasher.Check(input.Password, srv.dummyDigest)
			srv.logger.Warn("Authentication failed", slog.String("username", input.Username), slog.String("reason", string(domainerrors.AuthFailureUserNotFound)))

			return nil, domainerrors.NewAuthFailure(domainerrors.AuthFailureUserNotFound)
		}

		return nil, srv.storageError(err, "failed to look up credential")
	}

	match, err := srv.hasher.Check(input.Password, credential.PasswordDigest)
	if err != nil {
		// A digest that fails to parse is corrupted stored data, never a
		// plain mismatch. Surface it loudly.
		srv.logger.Error("Stored digest is malformed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to verify password")
	}
	if !match {
		srv.logger.Warn("Authentication failed", slog.String("username", input.Username), slog.String("reason", string(domainerrors.AuthFailureBadPassword)))

		return nil, domainerrors.NewAuthFailure(domainerrors.AuthFailureBadPassword)
	}

	sessionToken, err := srv.issueSession(ctx, credential.Username)
	if err != nil {
		return nil, err
	}

	srv.logger.Debug("Authentication succeeded", slog.String("username", credential.Username))

	return &usecase.AuthenticateOutput{SessionToken: sessionToken}, nil
}

// ValidateSession resolves a raw session token to its username.
func (srv *credentialService) ValidateSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domainerrors.NewSessionInvalid(domainerrors.SessionNotFound)
	}

	tokenHash := srv.minter.HashToken(token)

	session, err := srv.sessionRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", domainerrors.NewSessionInvalid(domainerrors.SessionNotFound)
		}

		return "", srv.storageError(err, "failed to look up session")
	}

	if session.ExpiredAt(srv.clock.Now()) {
		// Expired sessions are reaped on sight; the next validation of the
		// same token reports not_found.
		if err := srv.sessionRepo.Delete(ctx, tokenHash); err != nil {
			srv.logger.Warn("Failed to delete expired session", slog.Any("error", err))
		}

		return "", domainerrors.NewSessionInvalid(domainerrors.SessionExpired)
	}

	return session.Username, nil
}

// Logout deletes the session for the given raw token. Idempotent.
func (srv *credentialService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := srv.sessionRepo.Delete(ctx, srv.minter.HashToken(token)); err != nil {
		return srv.storageError(err, "failed to delete session")
	}

	srv.logger.Debug("Session deleted on logout")

	return nil
}

// issueSession mints a fresh token and persists the session record.
func (srv *credentialService) issueSession(ctx context.Context, username string) (*entity.SessionToken, error) {
	token, err := srv.minter.Mint()
	if err != nil {
		return nil, errors.Wrap(err, "failed to mint session token")
	}

	now := srv.clock.Now()
	session := &entity.Session{
		TokenHash: srv.minter.HashToken(token),
		Username:  username,
		IssuedAt:  now,
		ExpiresAt: now.Add(srv.sessionTTL),
	}

	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		return nil, srv.storageError(err, "failed to store session")
	}

	return &entity.SessionToken{
		Token:     token,
		Username:  username,
		IssuedAt:  session.IssuedAt,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// storageError wraps a store I/O failure as the generic storage fault. The
// kernel performs no retries; those belong to the storage layer.
func (srv *credentialService) storageError(err error, message string) error {
	srv.logger.Error("Storage operation failed", slog.String("message", message), slog.Any("error", err))

	return errors.Wrap(domainerrors.ErrStorageUnavailable, message)
}
