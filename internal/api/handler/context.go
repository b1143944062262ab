package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/uzineck/sep-backend/internal/api/middleware"
	"github.com/uzineck/sep-backend/internal/core/domain"
)

// ctxClientEmail extracts the email claim injected by the Auth gate.
// Its presence proves the gate ran; a handler reached without it is a
// wiring bug surfaced as 401 rather than a panic.
func ctxClientEmail(c echo.Context) (string, error) {
	email, _ := c.Get(apimiddleware.CtxClientEmail).(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, nil
}

// ctxClientRole extracts the role claim injected by the Auth gate.
func ctxClientRole(c echo.Context) (domain.Role, error) {
	role, _ := c.Get(apimiddleware.CtxClientRole).(domain.Role)
	if role == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return role, nil
}
