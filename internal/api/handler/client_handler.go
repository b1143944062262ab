package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uzineck/sep-backend/internal/api/metrics"
	apimiddleware "github.com/uzineck/sep-backend/internal/api/middleware"
	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/usecase"
)

const refreshCookieName = "refresh_token"

// UseCases aggregates the account workflows the handler dispatches to.
type UseCases struct {
	Create            *usecase.CreateClient
	Login             *usecase.Login
	Logout            *usecase.Logout
	GetInfo           *usecase.GetClientInfo
	UpdateAccessToken *usecase.UpdateAccessToken
	UpdateCredentials *usecase.UpdateCredentials
	UpdateEmail       *usecase.UpdateEmail
	UpdatePassword    *usecase.UpdatePassword
	UpdateScore       *usecase.UpdateScore
	UpdateRole        *usecase.UpdateRole
}

// ClientHandler handles HTTP requests for account operations.
type ClientHandler struct {
	uc UseCases
}

func NewClientHandler(uc UseCases) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// --- Request / Response types ---

type signUpRequest struct {
	LastName       string `json:"last_name" validate:"required"`
	FirstName      string `json:"first_name" validate:"required"`
	MiddleName     string `json:"middle_name"`
	Role           string `json:"role" validate:"required,oneof=admin manager creator"`
	Email          string `json:"email" validate:"required"`
	Password       string `json:"password" validate:"required"`
	VerifyPassword string `json:"verify_password" validate:"required"`
}

type logInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updatePasswordRequest struct {
	OldPassword    string `json:"old_password" validate:"required"`
	NewPassword    string `json:"new_password" validate:"required"`
	VerifyPassword string `json:"verify_password" validate:"required"`
}

type updateEmailRequest struct {
	NewEmail string `json:"new_email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateCredentialsRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	MiddleName string `json:"middle_name"`
}

type updateScoreRequest struct {
	Liked bool `json:"liked"`
}

type updateRoleRequest struct {
	Email string `json:"email" validate:"required"`
	Role  string `json:"role" validate:"required,oneof=admin manager creator"`
}

type clientResponse struct {
	LastName   string  `json:"last_name"`
	FirstName  string  `json:"first_name"`
	MiddleName string  `json:"middle_name"`
	Score      float64 `json:"score"`
	Role       string  `json:"role"`
	Email      string  `json:"email"`
}

func newClientResponse(client *domain.Client) clientResponse {
	return clientResponse{
		LastName:   client.LastName,
		FirstName:  client.FirstName,
		MiddleName: client.MiddleName,
		Score:      client.Score,
		Role:       string(client.Role),
		Email:      client.Email,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type clientTokenResponse struct {
	clientResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// --- Handlers ---

// SignUp registers a new client account.
//
// @Summary      Register a new client
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Sign-up details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/client/sign-up [post]
func (h *ClientHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.uc.Create.Execute(c.Request().Context(), usecase.CreateClientInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MiddleName:     req.MiddleName,
		Role:           domain.Role(req.Role),
		Email:          req.Email,
		Password:       req.Password,
		VerifyPassword: req.VerifyPassword,
	})
	if err != nil {
		countPolicyViolation(err)
		return err
	}

	return c.JSON(http.StatusCreated, newClientResponse(client))
}

// LogIn authenticates a client and issues a token pair. The refresh token
// additionally travels in an HTTP-only cookie.
//
// @Summary      Log in
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      logInRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/client/log-in [post]
func (h *ClientHandler) LogIn(c echo.Context) error {
	var req logInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, tokens, err := h.uc.Login.Execute(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		// An unknown email reads exactly like a wrong password.
		if errors.Is(err, domain.ErrClientNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues(string(domain.TokenTypeAccess)).Inc()
	metrics.TokensIssuedTotal.WithLabelValues(string(domain.TokenTypeRefresh)).Inc()

	setRefreshCookie(c, tokens.RefreshToken)
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// LogOut clears the refresh cookie. Tokens are stateless, so nothing is
// revoked server-side.
//
// @Summary      Log out
// @Tags         client
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /api/v1/client/log-out [post]
func (h *ClientHandler) LogOut(c echo.Context) error {
	token, _ := c.Get(apimiddleware.CtxToken).(string)
	if err := h.uc.Logout.Execute(c.Request().Context(), token); err != nil {
		return err
	}

	deleteRefreshCookie(c)
	return c.JSON(http.StatusOK, statusResponse{Status: "successfully logged out"})
}

// Info returns the authenticated client's own account.
//
// @Summary      Get own account info
// @Tags         client
// @Produce      json
// @Success      200  {object}  clientResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/client/info [get]
func (h *ClientHandler) Info(c echo.Context) error {
	email, err := ctxClientEmail(c)
	if err != nil {
		return err
	}

	client, err := h.uc.GetInfo.Execute(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newClientResponse(client))
}

// UpdateAccessToken exchanges the refresh cookie for a fresh access token.
// The refresh token is not rotated, so no new cookie is set.
//
// @Summary      Refresh the access token
// @Tags         client
// @Produce      json
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/client/update_access_token [post]
func (h *ClientHandler) UpdateAccessToken(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	tokens, err := h.uc.UpdateAccessToken.Execute(c.Request().Context(), cookie.Value)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues(string(domain.TokenTypeAccess)).Inc()
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: tokens.AccessToken})
}

// UpdatePassword changes the authenticated client's password.
//
// @Summary      Update password
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      updatePasswordRequest  true  "Password change"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/client/update_password [patch]
func (h *ClientHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	email, err := ctxClientEmail(c)
	if err != nil {
		return err
	}

	if err := h.uc.UpdatePassword.Execute(c.Request().Context(), email, req.OldPassword, req.NewPassword, req.VerifyPassword); err != nil {
		countPolicyViolation(err)
		return err
	}

	metrics.ClientUpdatesTotal.WithLabelValues("password").Inc()
	return c.JSON(http.StatusOK, statusResponse{Status: "password updated successfully"})
}

// UpdateEmail changes the authenticated client's email and reissues tokens,
// since the subject claim changed.
//
// @Summary      Update email
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      updateEmailRequest  true  "Email change"
// @Success      200   {object}  clientTokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/client/update_email [patch]
func (h *ClientHandler) UpdateEmail(c echo.Context) error {
	var req updateEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	email, err := ctxClientEmail(c)
	if err != nil {
		return err
	}

	client, tokens, err := h.uc.UpdateEmail.Execute(c.Request().Context(), email, req.NewEmail, req.Password)
	if err != nil {
		countPolicyViolation(err)
		return err
	}

	metrics.ClientUpdatesTotal.WithLabelValues("email").Inc()
	metrics.TokensIssuedTotal.WithLabelValues(string(domain.TokenTypeAccess)).Inc()
	metrics.TokensIssuedTotal.WithLabelValues(string(domain.TokenTypeRefresh)).Inc()

	setRefreshCookie(c, tokens.RefreshToken)
	return c.JSON(http.StatusOK, clientTokenResponse{
		clientResponse: newClientResponse(client),
		AccessToken:    tokens.AccessToken,
		RefreshToken:   tokens.RefreshToken,
	})
}

// UpdateCredentials changes the authenticated client's names.
//
// @Summary      Update names
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      updateCredentialsRequest  true  "New names"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/client/update_credentials [patch]
func (h *ClientHandler) UpdateCredentials(c echo.Context) error {
	var req updateCredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	email, err := ctxClientEmail(c)
	if err != nil {
		return err
	}

	client, err := h.uc.UpdateCredentials.Execute(c.Request().Context(), email, req.FirstName, req.LastName, req.MiddleName)
	if err != nil {
		return err
	}

	metrics.ClientUpdatesTotal.WithLabelValues("credentials").Inc()
	return c.JSON(http.StatusOK, newClientResponse(client))
}

// UpdateScore applies one vote to the client identified by the query param.
//
// @Summary      Update score
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        client_email  query     string             true  "Target client email"
// @Param        body          body      updateScoreRequest true  "Vote"
// @Success      200           {object}  clientResponse
// @Failure      404           {object}  map[string]string
// @Router       /api/v1/client/update_score [patch]
func (h *ClientHandler) UpdateScore(c echo.Context) error {
	email := c.QueryParam("client_email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "client_email is required")
	}
	var req updateScoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	client, err := h.uc.UpdateScore.Execute(c.Request().Context(), email, req.Liked)
	if err != nil {
		return err
	}

	metrics.ClientUpdatesTotal.WithLabelValues("score").Inc()
	return c.JSON(http.StatusOK, newClientResponse(client))
}

// UpdateRole reassigns a client's role. Admin only.
//
// @Summary      Update role
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      updateRoleRequest  true  "Role change"
// @Success      200   {object}  clientResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/client/update_role [patch]
func (h *ClientHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actorRole, err := ctxClientRole(c)
	if err != nil {
		return err
	}

	client, err := h.uc.UpdateRole.Execute(c.Request().Context(), actorRole, req.Email, domain.Role(req.Role))
	if err != nil {
		return err
	}

	metrics.ClientUpdatesTotal.WithLabelValues("role").Inc()
	return c.JSON(http.StatusOK, newClientResponse(client))
}

// DeleteCookie drops the refresh cookie without touching anything else.
//
// @Summary      Delete refresh cookie
// @Tags         client
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /api/v1/client/delete_cookie [post]
func (h *ClientHandler) DeleteCookie(c echo.Context) error {
	deleteRefreshCookie(c)
	return c.JSON(http.StatusOK, statusResponse{Status: "successfully deleted cookie"})
}

// --- helpers ---

func setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func deleteRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func countPolicyViolation(err error) {
	switch {
	case errors.Is(err, domain.ErrPasswordPattern),
		errors.Is(err, domain.ErrPasswordsNotMatching),
		errors.Is(err, domain.ErrPasswordsSimilar):
		metrics.PolicyViolationsTotal.WithLabelValues("password").Inc()
	case errors.Is(err, domain.ErrEmailPattern),
		errors.Is(err, domain.ErrEmailsSimilar):
		metrics.PolicyViolationsTotal.WithLabelValues("email").Inc()
	}
}
