package usecase

import (
	"context"

	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/ports"
)

// UpdateRole reassigns a client's role. Only an admin actor may perform it;
// the check is exact, other roles do not qualify.
type UpdateRole struct {
	clients ports.ClientService
}

func NewUpdateRole(clients ports.ClientService) *UpdateRole {
	return &UpdateRole{clients: clients}
}

func (uc *UpdateRole) Execute(ctx context.Context, actorRole domain.Role, email string, role domain.Role) (*domain.Client, error) {
	if err := uc.clients.CheckClientRole(actorRole, domain.RoleAdmin); err != nil {
		return nil, err
	}

	client, err := uc.clients.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := uc.clients.UpdateRole(ctx, client.ID, role); err != nil {
		return nil, err
	}
	return uc.clients.GetByID(ctx, client.ID)
}
