package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/uzineck/sep-backend/internal/api/handler"
	"github.com/uzineck/sep-backend/internal/api/middleware"
	"github.com/uzineck/sep-backend/internal/core/auth"
	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/service"
	"github.com/uzineck/sep-backend/internal/core/usecase"
	"github.com/uzineck/sep-backend/internal/core/validation"
	mongodb "github.com/uzineck/sep-backend/internal/infrastructure/db/mongo"
	"github.com/uzineck/sep-backend/internal/pkg/config"
)

// NewRouter builds the Echo instance with every dependency wired by
// explicit construction: hasher, token service, repository, facade,
// validator chains (in declared order) and one use-case per workflow.
func NewRouter(db *mongo.Database, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("sep"))

	// --- Core dependencies ---
	hasher := auth.NewBcryptHasher(0)
	tokens := auth.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	repo := mongodb.NewClientRepository(db)
	clients := service.NewClientService(repo, hasher, tokens, log)

	passwordPolicy := validation.NewComposedPasswordValidator(
		validation.PasswordPatternRule{},
		validation.MatchingVerifyPasswordRule{},
		validation.SimilarOldAndNewPasswordRule{},
	)
	emailPolicy := validation.NewComposedEmailValidator(
		validation.EmailPatternRule{},
		validation.SimilarOldAndNewEmailRule{},
		validation.NewEmailAlreadyInUseRule(clients),
	)

	clientHandler := handler.NewClientHandler(handler.UseCases{
		Create:            usecase.NewCreateClient(clients, hasher, passwordPolicy, emailPolicy),
		Login:             usecase.NewLogin(clients),
		Logout:            usecase.NewLogout(clients),
		GetInfo:           usecase.NewGetClientInfo(clients),
		UpdateAccessToken: usecase.NewUpdateAccessToken(clients),
		UpdateCredentials: usecase.NewUpdateCredentials(clients),
		UpdateEmail:       usecase.NewUpdateEmail(clients, emailPolicy),
		UpdatePassword:    usecase.NewUpdatePassword(clients, hasher, passwordPolicy),
		UpdateScore:       usecase.NewUpdateScore(clients),
		UpdateRole:        usecase.NewUpdateRole(clients),
	})

	allRoles := []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleCreator}
	authAny := middleware.Auth(tokens, allRoles)
	authAdmin := middleware.Auth(tokens, []domain.Role{domain.RoleAdmin})

	// --- Client routes ---
	client := e.Group("/api/v1/client")
	client.POST("/sign-up", clientHandler.SignUp, authAdmin)
	client.POST("/log-in", clientHandler.LogIn)
	client.POST("/log-out", clientHandler.LogOut, authAny)
	client.GET("/info", clientHandler.Info, authAny)
	client.POST("/update_access_token", clientHandler.UpdateAccessToken)
	client.PATCH("/update_password", clientHandler.UpdatePassword, authAny)
	client.PATCH("/update_email", clientHandler.UpdateEmail, authAny)
	client.PATCH("/update_credentials", clientHandler.UpdateCredentials, authAny)
	client.PATCH("/update_score", clientHandler.UpdateScore)
	client.PATCH("/update_role", clientHandler.UpdateRole, authAdmin)
	client.POST("/delete_cookie", clientHandler.DeleteCookie)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db).Readiness)

	return e
}
