package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/ports"
)

// ClientService orchestrates hashing, token issuance and persistence behind
// a single facade consumed by the use-cases.
type ClientService struct {
	repo   ports.ClientRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, hasher ports.PasswordHasher, tokens ports.TokenService, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, hasher: hasher, tokens: tokens, logger: logger}
}

// Create persists a new account. Duplicate emails are detected by the store
// constraint, not pre-checked; the race between check and insert is settled
// by the unique index.
func (s *ClientService) Create(ctx context.Context, record ports.CreateClientRecord) (*domain.Client, error) {
	client := &domain.Client{
		FirstName:  record.FirstName,
		LastName:   record.LastName,
		MiddleName: record.MiddleName,
		Email:      record.Email,
		Role:       record.Role,
		Password:   record.HashedPassword,
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", record.Email).Msg("client creation failed")
		return nil, err
	}
	return created, nil
}

func (s *ClientService) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *ClientService) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) CheckClientExists(ctx context.Context, email string) (bool, error) {
	return s.repo.Exists(ctx, email)
}

// ValidatePassword maps a hash mismatch to the generic invalid-credentials
// error; callers never learn whether the account or the password was wrong.
func (s *ClientService) ValidatePassword(hashedPassword, plainPassword string) error {
	if !s.hasher.Verify(plainPassword, hashedPassword) {
		s.logger.Info().Msg("client password validation failed")
		return domain.ErrInvalidCredentials
	}
	return nil
}

func (s *ClientService) CheckClientRole(clientRole, requiredRole domain.Role) error {
	if clientRole != requiredRole {
		s.logger.Warn().
			Str("client_role", string(clientRole)).
			Str("required_role", string(requiredRole)).
			Msg("client role mismatch")
		return domain.ErrRoleMismatch
	}
	return nil
}

func (s *ClientService) UpdateEmail(ctx context.Context, id, email string) error {
	matched, err := s.repo.UpdateEmail(ctx, id, email)
	return s.checkUpdated(matched, err, id, "email")
}

func (s *ClientService) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	matched, err := s.repo.UpdatePassword(ctx, id, hashedPassword)
	return s.checkUpdated(matched, err, id, "password")
}

func (s *ClientService) UpdateCredentials(ctx context.Context, id, firstName, lastName, middleName string) error {
	matched, err := s.repo.UpdateCredentials(ctx, id, firstName, lastName, middleName)
	return s.checkUpdated(matched, err, id, "credentials")
}

func (s *ClientService) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	matched, err := s.repo.UpdateRole(ctx, id, role)
	return s.checkUpdated(matched, err, id, "role")
}

func (s *ClientService) UpdateScore(ctx context.Context, id string, score float64) error {
	matched, err := s.repo.UpdateScore(ctx, id, score)
	return s.checkUpdated(matched, err, id, "score")
}

// checkUpdated conflates "id not found" with "no rows changed" into one
// update failure, an accepted ambiguity of single-statement updates.
func (s *ClientService) checkUpdated(matched int64, err error, id, field string) error {
	if err != nil {
		return err
	}
	if matched == 0 {
		s.logger.Error().Str("client_id", id).Str("field", field).Msg("client update matched no rows")
		return domain.ErrClientUpdateFailed
	}
	return nil
}

// GenerateTokens mints an access/refresh pair that shares a freshly
// generated device id.
func (s *ClientService) GenerateTokens(client *domain.Client) (*domain.Token, error) {
	deviceID := uuid.NewString()

	access, err := s.tokens.CreateAccessToken(client, map[string]any{"device_id": deviceID})
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.CreateRefreshToken(client, map[string]any{"device_id": deviceID})
	if err != nil {
		return nil, err
	}

	return &domain.Token{AccessToken: access, RefreshToken: refresh}, nil
}

// UpdateAccessToken mints only a new access token bound to the device id
// carried by the original refresh token. Rotation-free refresh: the refresh
// token itself is not reissued.
func (s *ClientService) UpdateAccessToken(client *domain.Client, deviceID string) (*domain.Token, error) {
	access, err := s.tokens.CreateAccessToken(client, map[string]any{"device_id": deviceID})
	if err != nil {
		return nil, err
	}
	return &domain.Token{AccessToken: access}, nil
}

// Token introspection pass-throughs.

func (s *ClientService) RawClaims(token string) (map[string]any, error) {
	return s.tokens.RawClaims(token)
}

func (s *ClientService) ClientEmail(token string) (string, error) {
	return s.tokens.ClientEmail(token)
}

func (s *ClientService) ClientRole(token string) (domain.Role, error) {
	return s.tokens.ClientRole(token)
}

func (s *ClientService) TokenType(token string) (domain.TokenType, error) {
	return s.tokens.TokenType(token)
}

func (s *ClientService) JTI(token string) (string, error) {
	return s.tokens.JTI(token)
}

func (s *ClientService) DeviceID(token string) (string, error) {
	return s.tokens.DeviceID(token)
}

func (s *ClientService) ExpirationTime(token string) (int64, error) {
	return s.tokens.ExpirationTime(token)
}
