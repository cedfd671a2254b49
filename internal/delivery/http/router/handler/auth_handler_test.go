package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"credence/config"
	"credence/internal/delivery/http/middleware"
	"credence/internal/delivery/http/validator"
	"credence/internal/domain/entity"
	domainerrors "credence/internal/domain/errors"
	"credence/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCredentialUsecase is a scripted CredentialUsecase for handler tests.
type fakeCredentialUsecase struct {
	registerOutput *usecase.RegisterOutput
	registerErr    error
	authOutput     *usecase.AuthenticateOutput
	authErr        error
	validUsername  string
	validateErr    error
	loggedOut      []string
}

func (f *fakeCredentialUsecase) Register(_ context.Context, _ *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	return f.registerOutput, f.registerErr
}

func (f *fakeCredentialUsecase) Authenticate(_ context.Context, _ *usecase.AuthenticateInput) (*usecase.AuthenticateOutput, error) {
	return f.authOutput, f.authErr
}

func (f *fakeCredentialUsecase) ValidateSession(_ context.Context, _ string) (string, error) {
	return f.validUsername, f.validateErr
}

func (f *fakeCredentialUsecase) Logout(_ context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)

	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{CookieName: "credence_session"}

	return cfg
}

func newTestEcho(t *testing.T, uc usecase.CredentialUsecase) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig()

	e := echo.New()
	e.Validator = validator.New()

	h := NewAuthHandler(uc, cfg, logger)
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/logout", h.Logout)

	authMW := middleware.NewAuthMiddleware(uc, cfg)
	e.GET("/me", h.Me, authMW.Authenticate)

	return e
}

func TestAuthHandler_Register(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	uc := &fakeCredentialUsecase{
		registerOutput: &usecase.RegisterOutput{
			Credential: &entity.Credential{
				ID:             uuid.New(),
				Username:       "alice",
				PasswordDigest: "$2a$10$secret",
				CreatedAt:      now,
			},
		},
	}
	e := newTestEcho(t, uc)

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"username":"alice","password":"correcthorse"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	// The password digest never reaches the wire.
	assert.NotContains(t, rec.Body.String(), "$2a$10$secret")
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	e := newTestEcho(t, &fakeCredentialUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"username":"alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	uc := &fakeCredentialUsecase{
		authOutput: &usecase.AuthenticateOutput{
			SessionToken: &entity.SessionToken{
				Token:     "opaque-token",
				Username:  "alice",
				IssuedAt:  now,
				ExpiresAt: now.Add(24 * time.Hour),
			},
		},
	}
	e := newTestEcho(t, uc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"alice","password":"correcthorse"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var found *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "credence_session" {
			found = cookie
		}
	}
	require.NotNil(t, found, "login must set the session cookie")
	assert.Equal(t, "opaque-token", found.Value)
	assert.True(t, found.HttpOnly)

	var body struct {
		Data struct {
			Token    string `json:"token"`
			Username string `json:"username"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "opaque-token", body.Data.Token)
	assert.Equal(t, "alice", body.Data.Username)
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	uc := &fakeCredentialUsecase{}
	e := newTestEcho(t, uc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "credence_session", Value: "opaque-token"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"opaque-token"}, uc.loggedOut)

	var cleared *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "credence_session" {
			cleared = cookie
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestAuthHandler_Me(t *testing.T) {
	uc := &fakeCredentialUsecase{validUsername: "alice"}
	e := newTestEcho(t, uc)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "credence_session", Value: "opaque-token"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}

func TestAuthHandler_Me_InvalidSession(t *testing.T) {
	testCases := []struct {
		name    string
		prepare func(*fakeCredentialUsecase, *http.Request)
	}{
		{
			name: "missing token",
			prepare: func(_ *fakeCredentialUsecase, _ *http.Request) {
			},
		},
		{
			name: "session not found",
			prepare: func(uc *fakeCredentialUsecase, req *http.Request) {
				uc.validateErr = domainerrors.NewSessionInvalid(domainerrors.SessionNotFound)
				req.AddCookie(&http.Cookie{Name: "credence_session", Value: "stale"})
			},
		},
		{
			name: "session expired",
			prepare: func(uc *fakeCredentialUsecase, req *http.Request) {
				uc.validateErr = domainerrors.NewSessionInvalid(domainerrors.SessionExpired)
				req.AddCookie(&http.Cookie{Name: "credence_session", Value: "stale"})
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &fakeCredentialUsecase{}
			e := newTestEcho(t, uc)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tc.prepare(uc, req)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			// Not-found and expired sessions are indistinguishable to the
			// caller: both are a plain 401.
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthHandler_BearerTokenFallback(t *testing.T) {
	uc := &fakeCredentialUsecase{validUsername: "alice"}
	e := newTestEcho(t, uc)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer opaque-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
