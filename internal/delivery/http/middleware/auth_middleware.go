// Package middleware contains the HTTP middleware for the delivery layer.
package middleware

import (
	"net/http"
	"strings"

	"credence/config"
	"credence/internal/usecase"

	"github.com/labstack/echo/v4"
)

// UsernameContextKey is the echo context key under which the authenticated
// username is stored by Authenticate.
const UsernameContextKey = "username"

// AuthMiddleware validates the session token on protected routes. The token
// is read fresh from the request on every call; there is no ambient session
// state on the server side of the delivery layer.
type AuthMiddleware struct {
	uc         usecase.CredentialUsecase
	cookieName string
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(uc usecase.CredentialUsecase, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{uc: uc, cookieName: cfg.Auth.CookieName}
}

// Authenticate resolves the session token to a username and stores it on the
// context. Missing and expired sessions both produce the same 401; the
// caller cannot tell them apart.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := m.extractToken(c)
		if token == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing session token"})
		}

		username, err := m.uc.ValidateSession(c.Request().Context(), token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session is not valid"})
		}

		c.Set(UsernameContextKey, username)

		return next(c)
	}
}

// extractToken reads the session token from the session cookie or, for
// non-browser clients, a Bearer authorization header.
func (m *AuthMiddleware) extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return token
	}

	return ""
}
