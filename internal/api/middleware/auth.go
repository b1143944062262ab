package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/ports"
)

// Context keys populated by the Auth gate.
const (
	CtxToken       = "auth_token"
	CtxClientEmail = "client_email"
	CtxClientRole  = "client_role"
)

// Auth is the bearer-token capability gate: it verifies the token signature,
// requires an access token, and enforces the role allow-list plus an
// optional email allow-list. A token that fails to parse yields 401; a
// parsed but disallowed token yields 403.
func Auth(tokens ports.TokenIntrospector, allowedRoles []domain.Role, allowedEmails ...string) echo.MiddlewareFunc {
	roles := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		roles[r] = struct{}{}
	}
	emails := make(map[string]struct{}, len(allowedEmails))
	for _, e := range allowedEmails {
		emails[e] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			token := parts[1]

			tokenType, err := tokens.TokenType(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if tokenType != domain.TokenTypeAccess {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token type")
			}

			role, err := tokens.ClientRole(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if len(roles) > 0 {
				if _, ok := roles[role]; !ok {
					return echo.NewHTTPError(http.StatusForbidden, "client does not have permission to access this resource")
				}
			}

			email, err := tokens.ClientEmail(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if len(emails) > 0 {
				if _, ok := emails[email]; !ok {
					return echo.NewHTTPError(http.StatusForbidden, "client does not have permission to access this resource")
				}
			}

			c.Set(CtxToken, token)
			c.Set(CtxClientEmail, email)
			c.Set(CtxClientRole, role)

			return next(c)
		}
	}
}
