// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"credence/config"
	"credence/internal/delivery/http/middleware"
	"credence/internal/delivery/http/response"
	"credence/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication-related handlers.
type AuthHandler struct {
	uc         usecase.CredentialUsecase
	cookieName string
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.CredentialUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:         uc,
		cookieName: cfg.Auth.CookieName,
		logger:     logger,
	}
}

// credentialResponse is the wire shape of a registered credential. The
// password digest stays server-side.
type credentialResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// loginResponse is the wire shape of a successful login.
type loginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Register handles the registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, credentialResponse{
		ID:        output.Credential.ID.String(),
		Username:  output.Credential.Username,
		CreatedAt: output.Credential.CreatedAt,
	}, "Registered successfully")
}

// Login handles the login request. On success the session token is returned
// in the body and set as an HttpOnly cookie for browser callers.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.AuthenticateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Authenticate(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	token := output.SessionToken
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token.Token,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return response.Success(c, http.StatusOK, loginResponse{
		Token:     token.Token,
		Username:  token.Username,
		ExpiresAt: token.ExpiresAt,
	}, "Login successful")
}

// Logout handles the logout request. Logging out an already-absent session
// succeeds; logout is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := h.sessionToken(c)

	if err := h.uc.Logout(c.Request().Context(), token); err != nil {
		return errors.WithStack(err)
	}

	// Expire the cookie regardless of whether a session existed.
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// Me returns the username of the authenticated caller. The auth middleware
// has already validated the session.
func (h *AuthHandler) Me(c echo.Context) error {
	username, _ := c.Get(middleware.UsernameContextKey).(string)

	return response.Success(c, http.StatusOK, map[string]string{"username": username}, "")
}

// sessionToken reads the raw session token from the cookie or Authorization
// header, mirroring the auth middleware's extraction order.
func (h *AuthHandler) sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	const bearerPrefix = "Bearer "
	authHeader := c.Request().Header.Get("Authorization")
	if len(authHeader) > len(bearerPrefix) && authHeader[:len(bearerPrefix)] == bearerPrefix {
		return authHeader[len(bearerPrefix):]
	}

	return ""
}

// HealthCheck reports service liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
