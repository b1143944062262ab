package ports

import (
	"context"

	"github.com/uzineck/sep-backend/internal/core/domain"
)

// ClientRepository defines persistence operations for client accounts.
// Email uniqueness is enforced by the store itself: Create surfaces a
// constraint violation as domain.ErrClientExists rather than pre-checking.
// Update methods return the number of matched rows; zero means the id did
// not exist (or the write was a no-op, an accepted ambiguity).
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	Exists(ctx context.Context, email string) (bool, error)

	UpdateEmail(ctx context.Context, id, email string) (int64, error)
	UpdatePassword(ctx context.Context, id, hashedPassword string) (int64, error)
	UpdateCredentials(ctx context.Context, id, firstName, lastName, middleName string) (int64, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (int64, error)
	UpdateScore(ctx context.Context, id string, score float64) (int64, error)
}
