package usecase

import (
	"context"

	"github.com/uzineck/sep-backend/internal/core/ports"
)

// Logout performs no server-side invalidation: tokens are stateless, so
// logging out is the client deleting its cookie. A stolen access token
// therefore stays valid until natural expiry.
type Logout struct {
	clients ports.ClientService
}

func NewLogout(clients ports.ClientService) *Logout {
	return &Logout{clients: clients}
}

func (uc *Logout) Execute(_ context.Context, _ string) error {
	return nil
}
