package ports

import (
	"context"

	"github.com/uzineck/sep-backend/internal/core/domain"
)

// CreateClientRecord carries the already-hashed credentials for a new account.
type CreateClientRecord struct {
	FirstName      string
	LastName       string
	MiddleName     string
	Email          string
	Role           domain.Role
	HashedPassword string
}

// ClientService is the facade the use-cases talk to. It orchestrates the
// password hasher, the token service and the repository behind one API.
type ClientService interface {
	Create(ctx context.Context, record CreateClientRecord) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	CheckClientExists(ctx context.Context, email string) (bool, error)

	// ValidatePassword maps a hash mismatch to the generic
	// domain.ErrInvalidCredentials so callers cannot enumerate accounts.
	ValidatePassword(hashedPassword, plainPassword string) error
	// CheckClientRole is an exact equality check; admin does not subsume
	// the other roles here.
	CheckClientRole(clientRole, requiredRole domain.Role) error

	UpdateEmail(ctx context.Context, id, email string) error
	UpdatePassword(ctx context.Context, id, hashedPassword string) error
	UpdateCredentials(ctx context.Context, id, firstName, lastName, middleName string) error
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	UpdateScore(ctx context.Context, id string, score float64) error

	// GenerateTokens mints an access/refresh pair sharing a fresh device id.
	GenerateTokens(client *domain.Client) (*domain.Token, error)
	// UpdateAccessToken mints only a new access token bound to the supplied
	// device id; the refresh token is not reissued.
	UpdateAccessToken(client *domain.Client, deviceID string) (*domain.Token, error)

	TokenIntrospector
}
