package usecase

import (
	"context"

	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/ports"
)

// UpdateCredentials changes the client's names and returns the re-fetched
// entity, never the stale in-memory copy.
type UpdateCredentials struct {
	clients ports.ClientService
}

func NewUpdateCredentials(clients ports.ClientService) *UpdateCredentials {
	return &UpdateCredentials{clients: clients}
}

func (uc *UpdateCredentials) Execute(ctx context.Context, email, firstName, lastName, middleName string) (*domain.Client, error) {
	client, err := uc.clients.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := uc.clients.UpdateCredentials(ctx, client.ID, firstName, lastName, middleName); err != nil {
		return nil, err
	}
	return uc.clients.GetByID(ctx, client.ID)
}
