package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/uzineck/sep-backend/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns the single place that maps failure kind to a
// transport status code. Use-cases never catch domain errors; they land
// here. Unexpected errors are logged and hidden behind a generic message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case domain.IsPolicyViolation(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrClientExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrRoleMismatch):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrInvalidTokenType):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenClaimMissing):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, domain.ErrClientUpdateFailed):
		return http.StatusBadRequest, err.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
