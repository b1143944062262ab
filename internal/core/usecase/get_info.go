package usecase

import (
	"context"

	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/ports"
)

// GetClientInfo fetches the authenticated client's own entity.
type GetClientInfo struct {
	clients ports.ClientService
}

func NewGetClientInfo(clients ports.ClientService) *GetClientInfo {
	return &GetClientInfo{clients: clients}
}

func (uc *GetClientInfo) Execute(ctx context.Context, email string) (*domain.Client, error) {
	return uc.clients.GetByEmail(ctx, email)
}
